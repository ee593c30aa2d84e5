// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/binary"
	"fmt"

	"github.com/bitmark-inc/segmentledger/address"
	"github.com/bitmark-inc/segmentledger/balance"
	"github.com/bitmark-inc/segmentledger/event"
	"github.com/bitmark-inc/segmentledger/override"
	"github.com/bitmark-inc/segmentledger/segment"
)

// decode - readable form of a record from a pool, "" if the pool has no decoder
func decode(tag string, key []byte, value []byte) string {
	switch tag {

	case "S":
		n, err := address.Count(value)
		if nil != err {
			return fmt.Sprintf("segment error: %s", err)
		}
		return fmt.Sprintf("segment: %d addresses  first: %s  last: %s",
			n, address.At(value, 0), address.At(value, n-1))

	case "L":
		h := segment.Handle{}
		if err := segment.HandleFromBytes(&h, value); nil != err {
			return fmt.Sprintf("segment list error: %s", err)
		}
		return fmt.Sprintf("segment: %d  handle: %s", uint64Key(key), h)

	case "O":
		e, err := override.Unpack(value)
		if nil != err {
			return fmt.Sprintf("override error: %s", err)
		}
		return fmt.Sprintf("id: %d  state: %s  owner: %s", uint64Key(key), e.State, e.CurrentOwner())

	case "B":
		adj, err := balance.Unpack(value)
		if nil != err {
			return fmt.Sprintf("balance error: %s", err)
		}
		a := address.Address{}
		_ = address.FromBytes(&a, key)
		return fmt.Sprintf("address: %s  adjustment: %d  suppressed: %v", a, adj.Count, adj.Suppressed)

	case "E":
		e, err := event.Unpack(uint64Key(key), value)
		if nil != err {
			return fmt.Sprintf("event error: %s", err)
		}
		return fmt.Sprintf("event: %d  %s  from: %s  to: %s  id: %d  approved: %v",
			e.N, e.Kind, e.From, e.To, e.Id, e.Approved)

	case "C":
		if 8 != len(value) {
			return fmt.Sprintf("counter: %q  error: bad length: %d", key, len(value))
		}
		return fmt.Sprintf("counter: %q = %d", key, binary.BigEndian.Uint64(value))

	default:
		return ""
	}
}

// uint64Key - a big endian numeric key, zero if the key is not 8 bytes
func uint64Key(key []byte) uint64 {
	if 8 != len(key) {
		return 0
	}
	return binary.BigEndian.Uint64(key)
}
