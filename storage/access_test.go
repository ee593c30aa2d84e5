// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/segmentledger/storage/mocks"
)

func setupTestAccess(t *testing.T, cache Cache) (Access, *leveldb.DB, func()) {
	dir, err := ioutil.TempDir("", "access")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	db, err := leveldb.OpenFile(dir, nil)
	if nil != err {
		t.Fatalf("open leveldb error: %s", err)
	}
	teardown := func() {
		db.Close()
		os.RemoveAll(dir)
	}
	return newDA(db, new(leveldb.Batch), cache), db, teardown
}

func setupDummyMockCache(t *testing.T) (*mocks.MockCache, *gomock.Controller) {
	ctl := gomock.NewController(t)
	mockCache := mocks.NewMockCache(ctl)
	mockCache.EXPECT().Get(gomock.Any()).Return(nil, false, false).AnyTimes()
	mockCache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	mockCache.EXPECT().Clear().AnyTimes()
	return mockCache, ctl
}

func TestBeginShouldErrorWhenAlreadyInTransaction(t *testing.T) {
	mc, ctl := setupDummyMockCache(t)
	defer ctl.Finish()
	da, _, teardown := setupTestAccess(t, mc)
	defer teardown()

	err := da.Begin()
	assert.Nil(t, err, "first time Begin should with not error")

	err = da.Begin()
	assert.NotNil(t, err, "second time Begin should return error")
}

func TestCommitUnlockInUse(t *testing.T) {
	mc, ctl := setupDummyMockCache(t)
	defer ctl.Finish()
	da, _, teardown := setupTestAccess(t, mc)
	defer teardown()

	_ = da.Begin()
	err := da.Commit()
	assert.Nil(t, err, "commit error")
	assert.False(t, da.InUse(), "did not reset internal inUse")

	err = da.Begin()
	assert.Nil(t, err, "begin after commit")
}

func TestCommitWithoutBegin(t *testing.T) {
	mc, ctl := setupDummyMockCache(t)
	defer ctl.Finish()
	da, _, teardown := setupTestAccess(t, mc)
	defer teardown()

	assert.NotNil(t, da.Commit(), "commit without begin should fail")
}

func TestGetPrefersPendingValue(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	mc := mocks.NewMockCache(ctl)
	mc.EXPECT().Get("key").Return([]byte{'b'}, true, false).Times(1)

	da, db, teardown := setupTestAccess(t, mc)
	defer teardown()
	_ = db.Put([]byte("key"), []byte{'a'}, nil)

	value, err := da.Get([]byte("key"))
	assert.Nil(t, err, "get error")
	assert.Equal(t, []byte{'b'}, value, "pending value not returned")
}

func TestGetHidesPendingDelete(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	mc := mocks.NewMockCache(ctl)
	mc.EXPECT().Get("key").Return(nil, true, true).Times(2)

	da, db, teardown := setupTestAccess(t, mc)
	defer teardown()
	_ = db.Put([]byte("key"), []byte{'a'}, nil)

	_, err := da.Get([]byte("key"))
	assert.Equal(t, leveldb.ErrNotFound, err, "deleted key still visible")

	found, err := da.Has([]byte("key"))
	assert.Nil(t, err, "has error")
	assert.False(t, found, "deleted key still reported")

	value, err := da.GetCommitted([]byte("key"))
	assert.Nil(t, err, "committed get error")
	assert.Equal(t, []byte{'a'}, value, "committed value hidden")
}

func TestAbortDiscardsBatch(t *testing.T) {
	da, db, teardown := setupTestAccess(t, newCache())
	defer teardown()

	_ = da.Begin()
	da.Put([]byte("key"), []byte("value"))

	value, err := da.Get([]byte("key"))
	assert.Nil(t, err, "pending get error")
	assert.Equal(t, []byte("value"), value, "pending value")

	da.Abort()
	assert.False(t, da.InUse(), "abort should release")

	_, err = db.Get([]byte("key"), nil)
	assert.Equal(t, leveldb.ErrNotFound, err, "aborted write reached database")

	_, err = da.Get([]byte("key"))
	assert.Equal(t, leveldb.ErrNotFound, err, "aborted write still cached")
}
