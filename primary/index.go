// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package primary - the immutable primary assignment of items to owners
//
// items are numbered from 1 in the order their owners appear in the
// committed segments, each segment holding at most capacity owners:
//
//   segment index = (id - 1) / capacity
//   offset        = (id - 1) mod capacity
//
// owners are strictly increasing across the concatenation of all
// segments so membership is a binary search over item ids
package primary

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/segmentledger/address"
	"github.com/bitmark-inc/segmentledger/fault"
	"github.com/bitmark-inc/segmentledger/segment"
	"github.com/bitmark-inc/segmentledger/storage"
)

// DefaultCapacity - addresses per segment
const DefaultCapacity = 1228

const uint64ByteSize = 8

// key in the counters pool
var segmentCountKey = []byte("segments")

// Index - resolve item ids to primary owners
type Index struct {
	capacity uint64
	list     storage.Handle
	counters storage.Handle
	segments *segment.Store
}

// New - create an index over the segment list
func New(capacity int, list storage.Handle, counters storage.Handle, segments *segment.Store) (*Index, error) {
	if capacity <= 0 {
		return nil, fault.InvalidCapacity
	}
	return &Index{
		capacity: uint64(capacity),
		list:     list,
		counters: counters,
		segments: segments,
	}, nil
}

// Capacity - maximum number of addresses in one segment
func (x *Index) Capacity() uint64 {
	return x.capacity
}

// Count - number of committed segments
func (x *Index) Count(trx storage.Transaction) uint64 {
	var n uint64
	if nil == trx {
		n, _ = x.counters.GetN(segmentCountKey)
	} else {
		n, _ = trx.GetN(x.counters, segmentCountKey)
	}
	return n
}

// HandleAt - the handle of the n'th segment (0 based)
func (x *Index) HandleAt(trx storage.Transaction, n uint64) (segment.Handle, bool) {
	h := segment.Handle{}

	key := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(key, n)

	var packed []byte
	if nil == trx {
		packed = x.list.Get(key)
	} else {
		packed = trx.Get(x.list, key)
	}
	if nil == packed {
		return h, false
	}

	err := segment.HandleFromBytes(&h, packed)
	logger.PanicIfError("primary.HandleAt", err)
	return h, true
}

// Handles - all segment handles in commit order
func (x *Index) Handles(trx storage.Transaction) []segment.Handle {
	n := x.Count(trx)
	handles := make([]segment.Handle, 0, n)
	for i := uint64(0); i < n; i += 1 {
		h, ok := x.HandleAt(trx, i)
		if !ok {
			logger.Panicf("primary.Handles: missing segment: %d of %d", i, n)
		}
		handles = append(handles, h)
	}
	return handles
}

// segmentLength - number of addresses in the n'th segment
func (x *Index) segmentLength(trx storage.Transaction, n uint64) uint64 {
	h, ok := x.HandleAt(trx, n)
	if !ok {
		logger.Panicf("primary: missing segment: %d", n)
	}
	size, err := x.segments.Size(trx, h)
	logger.PanicIfError("primary.segmentLength", err)
	return uint64(size / address.Length)
}

// Length - total number of primary assigned items
func (x *Index) Length(trx storage.Transaction) uint64 {
	n := x.Count(trx)
	if 0 == n {
		return 0
	}
	return (n-1)*x.capacity + x.segmentLength(trx, n-1)
}

// Last - the final address of the last segment and whether that segment is full
//
// returns the zero address when there are no segments
func (x *Index) Last(trx storage.Transaction) (address.Address, bool, bool) {
	n := x.Count(trx)
	if 0 == n {
		return address.Zero, false, false
	}
	length := x.segmentLength(trx, n-1)
	last := x.OwnerAt(trx, (n-1)*x.capacity+length)
	return last, length == x.capacity, true
}

// OwnerAt - the primary owner of an item
//
// zero for id 0 and for any id beyond the committed segments
func (x *Index) OwnerAt(trx storage.Transaction, id uint64) address.Address {
	if 0 == id {
		return address.Zero
	}
	n := (id - 1) / x.capacity
	if n >= x.Count(trx) {
		return address.Zero
	}
	h, ok := x.HandleAt(trx, n)
	if !ok {
		logger.Panicf("primary.OwnerAt: missing segment: %d", n)
	}

	offset := int((id-1)%x.capacity) * address.Length
	buffer, err := x.segments.Read(trx, h, offset, address.Length)
	logger.PanicIfError("primary.OwnerAt", err)

	a := address.Address{}
	copy(a[:], buffer)
	return a
}

// Append - add a segment to the end of the list
//
// the caller is responsible for the ordering and capacity rules
func (x *Index) Append(trx storage.Transaction, h segment.Handle) uint64 {
	n := x.Count(trx)

	key := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(key, n)

	trx.Put(x.list, key, h[:])
	trx.PutN(x.counters, segmentCountKey, n+1)
	return n
}
