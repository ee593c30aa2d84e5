// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/segmentledger/fault"
	"github.com/bitmark-inc/segmentledger/storage"
)

func TestDoubleInitialise(t *testing.T) {
	name := setup(t)
	defer teardown(name)

	err := storage.Initialise(name, storage.ReadWrite)
	assert.Equal(t, fault.AlreadyInitialised, err, "second initialise accepted")
}

func TestTransactionCommit(t *testing.T) {
	name := setup(t)
	defer teardown(name)

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "begin error")

	_, err = storage.NewDBTransaction()
	assert.Equal(t, fault.TransactionInUse, err, "second transaction allowed")

	trx.Put(storage.Pool.TestData, []byte("key-one"), []byte("data-one"))
	trx.PutN(storage.Pool.TestData, []byte("key-two"), 42)

	assert.Equal(t, []byte("data-one"), trx.Get(storage.Pool.TestData, []byte("key-one")), "pending read")
	assert.Nil(t, storage.Pool.TestData.Get([]byte("key-one")), "uncommitted data visible outside transaction")

	n, ok := trx.GetN(storage.Pool.TestData, []byte("key-two"))
	assert.True(t, ok, "pending N not found")
	assert.Equal(t, uint64(42), n, "pending N value")

	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	assert.Equal(t, []byte("data-one"), storage.Pool.TestData.Get([]byte("key-one")), "committed read")
	assert.True(t, storage.Pool.TestData.Has([]byte("key-two")), "committed has")
	n, ok = storage.Pool.TestData.GetN([]byte("key-two"))
	assert.True(t, ok, "committed N not found")
	assert.Equal(t, uint64(42), n, "committed N value")

	// pools do not overlap
	assert.Nil(t, storage.Pool.Segments.Get([]byte("key-one")), "prefix leak")
}

func TestTransactionAbort(t *testing.T) {
	name := setup(t)
	defer teardown(name)

	trx, _ := storage.NewDBTransaction()
	trx.Put(storage.Pool.TestData, []byte("keep"), []byte("yes"))
	_ = trx.Commit()

	trx, _ = storage.NewDBTransaction()
	trx.Put(storage.Pool.TestData, []byte("lost"), []byte("no"))
	trx.Delete(storage.Pool.TestData, []byte("keep"))
	assert.False(t, trx.Has(storage.Pool.TestData, []byte("keep")), "pending delete visible")
	assert.True(t, trx.Has(storage.Pool.TestData, []byte("lost")), "pending put not visible")
	trx.Abort()

	assert.False(t, trx.InUse(), "abort did not release transaction")
	assert.True(t, storage.Pool.TestData.Has([]byte("keep")), "aborted delete applied")
	assert.False(t, storage.Pool.TestData.Has([]byte("lost")), "aborted put applied")
}

func TestCursor(t *testing.T) {
	name := setup(t)
	defer teardown(name)

	trx, _ := storage.NewDBTransaction()
	for i := uint64(1); i <= 10; i += 1 {
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, i)
		trx.PutN(storage.Pool.Events, key, i*100)
	}
	_ = trx.Commit()

	start := make([]byte, 8)
	binary.BigEndian.PutUint64(start, 3)
	cursor := storage.Pool.Events.NewFetchCursor().Seek(start)

	first, err := cursor.Fetch(4)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, 4, len(first), "first page length")
	assert.Equal(t, uint64(3), binary.BigEndian.Uint64(first[0].Key), "first page start")

	second, err := cursor.Fetch(4)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, 4, len(second), "second page length")
	assert.Equal(t, uint64(7), binary.BigEndian.Uint64(second[0].Key), "second page start")
	assert.Equal(t, uint64(700), binary.BigEndian.Uint64(second[0].Value), "second page value")

	rest, err := cursor.Fetch(4)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, 0, len(rest), "past end")

	_, err = cursor.Fetch(0)
	assert.Equal(t, fault.InvalidCount, err, "zero count accepted")

	all, err := storage.Pool.Events.NewFetchCursor().Fetch(math.MaxInt)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, 10, len(all), "unbounded count")

	total := 0
	err = storage.Pool.Events.NewFetchCursor().Map(func(key []byte, value []byte) error {
		total += 1
		return nil
	})
	assert.Nil(t, err, "map error")
	assert.Equal(t, 10, total, "map count")

	stop := fault.ProcessError("stop")
	total = 0
	err = storage.Pool.Events.NewFetchCursor().Seek(start).Map(func(key []byte, value []byte) error {
		if 2 == total {
			return stop
		}
		total += 1
		return nil
	})
	assert.Equal(t, stop, err, "map error not returned")
	assert.Equal(t, 2, total, "map continued after error")
}
