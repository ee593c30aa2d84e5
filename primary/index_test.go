// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package primary_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/segmentledger/address"
	"github.com/bitmark-inc/segmentledger/fault"
	"github.com/bitmark-inc/segmentledger/primary"
	"github.com/bitmark-inc/segmentledger/segment"
	"github.com/bitmark-inc/segmentledger/storage"
)

func makeAddress(n int) address.Address {
	a := address.Address{}
	binary.BigEndian.PutUint32(a[address.Length-4:], uint32(n))
	return a
}

func newIndex(t *testing.T, capacity int) *primary.Index {
	segments, err := segment.New(storage.Pool.Segments, 0)
	if nil != err {
		t.Fatalf("segment store error: %s", err)
	}
	x, err := primary.New(capacity, storage.Pool.SegmentList, storage.Pool.Counters, segments)
	if nil != err {
		t.Fatalf("index error: %s", err)
	}
	return x
}

// appendSegments - commit one segment per list
func appendSegments(t *testing.T, x *primary.Index, lists ...[]address.Address) {
	segments, _ := segment.New(storage.Pool.Segments, 0)

	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction error: %s", err)
	}
	for _, list := range lists {
		h := segments.Put(trx, address.Pack(list))
		x.Append(trx, h)
	}
	err = trx.Commit()
	if nil != err {
		t.Fatalf("commit error: %s", err)
	}
}

func TestNewIndex(t *testing.T) {
	name := setup(t)
	defer teardown(name)

	segments, err := segment.New(storage.Pool.Segments, 0)
	assert.Nil(t, err, "segment store error")

	_, err = primary.New(0, storage.Pool.SegmentList, storage.Pool.Counters, segments)
	assert.Equal(t, fault.InvalidCapacity, err, "zero capacity")

	x := newIndex(t, primary.DefaultCapacity)
	assert.Equal(t, uint64(1228), x.Capacity(), "capacity")
	assert.Equal(t, uint64(0), x.Count(nil), "count")
	assert.Equal(t, uint64(0), x.Length(nil), "length")
	assert.Equal(t, address.Zero, x.OwnerAt(nil, 1), "owner when empty")

	_, _, exists := x.Last(nil)
	assert.False(t, exists, "last when empty")
}

func TestOwnerAt(t *testing.T) {
	name := setup(t)
	defer teardown(name)

	x := newIndex(t, 3)
	appendSegments(t, x,
		[]address.Address{makeAddress(1), makeAddress(2), makeAddress(3)},
		[]address.Address{makeAddress(4), makeAddress(5)},
	)

	assert.Equal(t, uint64(2), x.Count(nil), "count")
	assert.Equal(t, uint64(5), x.Length(nil), "length")
	assert.Equal(t, 2, len(x.Handles(nil)), "handles")

	assert.Equal(t, address.Zero, x.OwnerAt(nil, 0), "id zero")
	for id := uint64(1); id <= 5; id += 1 {
		assert.Equal(t, makeAddress(int(id)), x.OwnerAt(nil, id), "owner of %d", id)
	}
	assert.Equal(t, address.Zero, x.OwnerAt(nil, 6), "unpopulated part of last segment")
	assert.Equal(t, address.Zero, x.OwnerAt(nil, 7), "beyond segments")

	last, full, exists := x.Last(nil)
	assert.True(t, exists, "last exists")
	assert.False(t, full, "last not full")
	assert.Equal(t, makeAddress(5), last, "last address")

	h, ok := x.HandleAt(nil, 1)
	assert.True(t, ok, "second handle")
	assert.Equal(t, segment.NewHandle(address.Pack([]address.Address{makeAddress(4), makeAddress(5)})), h, "second handle")

	_, ok = x.HandleAt(nil, 2)
	assert.False(t, ok, "no third handle")
}

func TestPendingSegmentsVisibleInTransaction(t *testing.T) {
	name := setup(t)
	defer teardown(name)

	x := newIndex(t, 2)
	segments, _ := segment.New(storage.Pool.Segments, 0)

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "transaction error")
	h := segments.Put(trx, address.Pack([]address.Address{makeAddress(7), makeAddress(8)}))
	assert.Equal(t, uint64(0), x.Append(trx, h), "segment number")

	assert.Equal(t, uint64(2), x.Length(trx), "pending length")
	assert.Equal(t, makeAddress(8), x.OwnerAt(trx, 2), "pending owner")
	assert.Equal(t, uint64(0), x.Length(nil), "committed length")

	trx.Abort()
	assert.Equal(t, uint64(0), x.Count(nil), "count after abort")
}

// binary search must agree with a scan over every committed address
func TestHasPrimaryMatchesScan(t *testing.T) {
	name := setup(t)
	defer teardown(name)

	x := newIndex(t, 4)
	lists := [][]address.Address{}
	n := 3
	for s := 0; s < 4; s += 1 {
		list := []address.Address{}
		size := 4
		if 3 == s {
			size = 3
		}
		for i := 0; i < size; i += 1 {
			list = append(list, makeAddress(n))
			n += 3
		}
		lists = append(lists, list)
	}
	appendSegments(t, x, lists...)

	scan := func(a address.Address) (uint64, bool) {
		for id := uint64(1); id <= x.Length(nil); id += 1 {
			if x.OwnerAt(nil, id) == a {
				return id, true
			}
		}
		return 0, false
	}

	for i := 0; i <= n+3; i += 1 {
		a := makeAddress(i)
		expectedId, expected := scan(a)
		id, found := x.PrimaryId(nil, a)
		assert.Equal(t, expected, found, "found %d", i)
		assert.Equal(t, expectedId, id, "id of %d", i)
		assert.Equal(t, expected, x.HasPrimary(nil, a), "has primary %d", i)
	}
	assert.False(t, x.HasPrimary(nil, address.Zero), "zero address")
}
