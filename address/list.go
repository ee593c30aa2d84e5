// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"github.com/bitmark-inc/segmentledger/fault"
)

// Pack - concatenate addresses into the raw batch form
func Pack(addresses []Address) []byte {
	buffer := make([]byte, 0, len(addresses)*Length)
	for _, a := range addresses {
		buffer = append(buffer, a[:]...)
	}
	return buffer
}

// Count - number of addresses in a raw batch
//
// the batch must be non-empty and a whole number of addresses
func Count(raw []byte) (int, error) {
	if 0 == len(raw) || 0 != len(raw)%Length {
		return 0, fault.InvalidAddresses
	}
	return len(raw) / Length, nil
}

// At - decode the n'th address of a raw batch
//
// an index beyond the populated region yields the zero address
func At(raw []byte, n int) Address {
	a := Address{}
	start := n * Length
	if n < 0 || start+Length > len(raw) {
		return a
	}
	copy(a[:], raw[start:start+Length])
	return a
}
