// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/bitmark-inc/segmentledger/fault"
)

// Length - number of bytes in an address
const Length = 20

// Address - an owner identity
//
// stored as big endian byte array so that byte order is numeric order
// represented as 0x prefixed hex for print and JSON encoding
// to convert to bytes just use a[:]
type Address [Length]byte

// Zero - the void owner, never a valid holder of an item
var Zero Address

// FromBytes - convert and validate a byte slice to an address
func FromBytes(a *Address, buffer []byte) error {
	if Length != len(buffer) {
		return fault.NotAddress
	}
	copy(a[:], buffer)
	return nil
}

// Parse - convert hex text, with or without the 0x prefix
func Parse(s string) (Address, error) {
	a := Address{}
	err := a.UnmarshalText([]byte(s))
	return a, err
}

// IsZero - true for the void owner
func (a Address) IsZero() bool {
	return a == Zero
}

// Compare - numeric comparison: -1, 0, +1
func (a Address) Compare(b Address) int {
	return bytes.Compare(a[:], b[:])
}

// Less - strict numeric ordering
func (a Address) Less(b Address) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

// String - convert a binary address to hex string for use by the fmt package (for %s)
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// GoString - for %#v
func (a Address) GoString() string {
	return "<address:" + hex.EncodeToString(a[:]) + ">"
}

// Scan - convert hex representation to an address for use by the format package scan routines
func (a *Address) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'F' {
			return true
		}
		if c >= 'a' && c <= 'f' {
			return true
		}
		return 'x' == c || 'X' == c
	})
	if nil != err {
		return err
	}
	return a.UnmarshalText(token)
}

// MarshalText - convert address to hex text
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert hex text into an address
func (a *Address) UnmarshalText(s []byte) error {
	text := strings.TrimPrefix(strings.TrimPrefix(string(s), "0x"), "0X")
	if Length != hex.DecodedLen(len(text)) || len(text)%2 != 0 {
		return fault.NotAddress
	}
	buffer := make([]byte, Length)
	if _, err := hex.Decode(buffer, []byte(text)); nil != err {
		return fault.NotAddress
	}
	copy(a[:], buffer)
	return nil
}
