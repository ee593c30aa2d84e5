// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package override - sparse record of owner changes since primary assignment
//
// an entry is created on the first transfer or burn of an item and is
// updated, never removed, by every later one
package override

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/segmentledger/address"
	"github.com/bitmark-inc/segmentledger/fault"
	"github.com/bitmark-inc/segmentledger/storage"
)

// structure of the packed entry
const (
	stateStart  = 0
	stateFinish = stateStart + 1

	ownerStart  = stateFinish
	ownerFinish = ownerStart + address.Length

	packLength = ownerFinish
)

// Entry - the override for one item
type Entry struct {
	State State
	Owner address.Address
}

// Present - an entry has been recorded
func (e Entry) Present() bool {
	return Absent != e.State
}

// CurrentOwner - the owner the entry reports, zero when retired
func (e Entry) CurrentOwner() address.Address {
	if Owned == e.State {
		return e.Owner
	}
	return address.Zero
}

// Pack - entry to byte slice
func (e Entry) Pack() []byte {
	packed := make([]byte, packLength)
	packed[stateStart] = byte(e.State)
	copy(packed[ownerStart:ownerFinish], e.Owner[:])
	return packed
}

// Unpack - byte slice to entry
func Unpack(packed []byte) (Entry, error) {
	e := Entry{}
	if packLength != len(packed) {
		return e, fault.NotOverridePack
	}
	e.State = State(packed[stateStart])
	err := address.FromBytes(&e.Owner, packed[ownerStart:ownerFinish])
	if nil != err {
		return e, err
	}

	switch e.State {
	case Owned:
		if e.Owner.IsZero() {
			return e, fault.NotOverridePack
		}
	case Retired:
		if !e.Owner.IsZero() {
			return e, fault.NotOverridePack
		}
	default:
		return e, fault.NotOverridePack
	}
	return e, nil
}

// Table - the override table
type Table struct {
	pool storage.Handle
}

// New - create a table over a storage pool
func New(pool storage.Handle) *Table {
	return &Table{
		pool: pool,
	}
}

func idKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

// Get - the entry for an item, Absent if never overridden
func (t *Table) Get(trx storage.Transaction, id uint64) Entry {
	var packed []byte
	if nil == trx {
		packed = t.pool.Get(idKey(id))
	} else {
		packed = trx.Get(t.pool, idKey(id))
	}
	if nil == packed {
		return Entry{State: Absent}
	}

	e, err := Unpack(packed)
	if nil != err {
		logger.Criticalf("override.Get: id: %d  packed: %x  error: %s", id, packed, err)
		logger.Panic("override.Get: database corrupt")
	}
	return e
}

// SetOwner - record a new explicit owner
func (t *Table) SetOwner(trx storage.Transaction, id uint64, owner address.Address) {
	if owner.IsZero() {
		logger.Panicf("override.SetOwner: id: %d  zero owner", id)
	}
	e := Entry{
		State: Owned,
		Owner: owner,
	}
	trx.Put(t.pool, idKey(id), e.Pack())
}

// Retire - record the item as owned by nobody
func (t *Table) Retire(trx storage.Transaction, id uint64) {
	e := Entry{
		State: Retired,
	}
	trx.Put(t.pool, idKey(id), e.Pack())
}
