// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package segment

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/segmentledger/fault"
)

// HandleLength - number of bytes in a handle
const HandleLength = 32

// Handle - the content address of a segment blob
// SHA3-256 of the blob, to convert to bytes just use h[:]
type Handle [HandleLength]byte

// NewHandle - compute the handle of a blob
func NewHandle(blob []byte) Handle {
	return sha3.Sum256(blob)
}

// HandleFromBytes - convert and validate a byte slice to a handle
func HandleFromBytes(h *Handle, buffer []byte) error {
	if HandleLength != len(buffer) {
		return fault.NotSegmentHandle
	}
	copy(h[:], buffer)
	return nil
}

// String - hex for use by the fmt package (for %s)
func (h Handle) String() string {
	return hex.EncodeToString(h[:])
}

// GoString - for %#v
func (h Handle) GoString() string {
	return "<SHA3-256:" + hex.EncodeToString(h[:]) + ">"
}

// MarshalText - convert handle to hex text
func (h Handle) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(h))
	buffer := make([]byte, size)
	hex.Encode(buffer, h[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a handle
func (h *Handle) UnmarshalText(s []byte) error {
	if HandleLength != hex.DecodedLen(len(s)) || 0 != len(s)%2 {
		return fault.NotSegmentHandle
	}
	buffer := make([]byte, HandleLength)
	if _, err := hex.Decode(buffer, s); nil != err {
		return fault.NotSegmentHandle
	}
	copy(h[:], buffer)
	return nil
}
