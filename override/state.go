// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package override

import (
	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/segmentledger/fault"
)

// State - the flag byte of an override entry
type State byte

// type codes for flag byte
const (
	Absent  State = iota // defer to the primary assignment
	Owned   State = iota // explicitly owned by an address
	Retired State = iota // explicitly owned by nobody
)

// internal conversion
func toString(state State) ([]byte, error) {
	switch state {
	case Absent:
		return []byte("Absent"), nil
	case Owned:
		return []byte("Owned"), nil
	case Retired:
		return []byte("Retired"), nil
	default:
		return []byte{}, fault.InvalidState
	}
}

// String - convert a state to its name
func (state State) String() string {
	s, err := toString(state)
	if nil != err {
		logger.Panicf("invalid state enumeration: %d", state)
	}
	return string(s)
}

// MarshalText - convert state to text
func (state State) MarshalText() ([]byte, error) {
	return toString(state)
}
