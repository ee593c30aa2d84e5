// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package primary

import (
	"github.com/bitmark-inc/segmentledger/address"
	"github.com/bitmark-inc/segmentledger/storage"
)

// PrimaryId - binary search for the item primarily assigned to an address
//
// an address has at most one primary item since no address repeats
func (x *Index) PrimaryId(trx storage.Transaction, a address.Address) (uint64, bool) {
	if a.IsZero() {
		return 0, false
	}

	low := uint64(1)
	high := x.Length(trx)
	for low <= high {
		mid := low + (high-low)/2
		switch x.OwnerAt(trx, mid).Compare(a) {
		case 0:
			return mid, true
		case -1:
			low = mid + 1
		default:
			high = mid - 1
		}
	}
	return 0, false
}

// HasPrimary - true if the address owns exactly one primary item
func (x *Index) HasPrimary(trx storage.Transaction, a address.Address) bool {
	_, found := x.PrimaryId(trx, a)
	return found
}
