// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"
)

// Transaction - a batch of writes across pools, applied atomically on
// Commit or discarded on Abort
//
// reads through a transaction see its own pending writes
type Transaction interface {
	Begin() error
	Put(Handle, []byte, []byte)
	PutN(Handle, []byte, uint64)
	Delete(Handle, []byte)
	Get(Handle, []byte) []byte
	GetN(Handle, []byte) (uint64, bool)
	Has(Handle, []byte) bool
	InUse() bool
	Commit() error
	Abort()
}

type transaction struct {
	access Access
}

func newTransaction(access Access) Transaction {
	return &transaction{
		access: access,
	}
}

func (t *transaction) Begin() error {
	return t.access.Begin()
}

func (t *transaction) Put(h Handle, key []byte, value []byte) {
	t.access.Put(h.PrefixKey(key), value)
}

func (t *transaction) PutN(h Handle, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	t.access.Put(h.PrefixKey(key), buffer)
}

func (t *transaction) Delete(h Handle, key []byte) {
	t.access.Delete(h.PrefixKey(key))
}

func (t *transaction) Get(h Handle, key []byte) []byte {
	value, err := t.access.Get(h.PrefixKey(key))
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("transaction.Get", err)
	return value
}

func (t *transaction) GetN(h Handle, key []byte) (uint64, bool) {
	buffer := t.Get(h, key)
	if nil == buffer {
		return 0, false
	}
	if len(buffer) < 8 {
		logger.Panicf("transaction.GetN truncated record for: %x: %s", key, buffer)
	}
	return binary.BigEndian.Uint64(buffer[:8]), true
}

func (t *transaction) Has(h Handle, key []byte) bool {
	found, err := t.access.Has(h.PrefixKey(key))
	logger.PanicIfError("transaction.Has", err)
	return found
}

func (t *transaction) InUse() bool {
	return t.access.InUse()
}

func (t *transaction) Commit() error {
	return t.access.Commit()
}

func (t *transaction) Abort() {
	t.access.Abort()
}
