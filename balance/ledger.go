// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package balance - per address adjustments relative to the primary assignment
//
// balance = adjustment + (has primary item and not suppressed ? 1 : 0)
//
// the suppressed flag is set the first time an address's primary item
// moves away and is never cleared; after that the primary contribution
// is carried by the adjustment alone
package balance

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/segmentledger/address"
	"github.com/bitmark-inc/segmentledger/fault"
	"github.com/bitmark-inc/segmentledger/storage"
)

// structure of the packed adjustment
const (
	countStart  = 0
	countFinish = countStart + 8

	flagsStart  = countFinish
	flagsFinish = flagsStart + 1

	packLength = flagsFinish
)

// flag bits
const (
	suppressedFlag = 0x01
)

// Adjustment - net ownership changes for one address
type Adjustment struct {
	Count      int64
	Suppressed bool
}

// Pack - adjustment to byte slice
func (a Adjustment) Pack() []byte {
	packed := make([]byte, packLength)
	binary.BigEndian.PutUint64(packed[countStart:countFinish], uint64(a.Count))
	if a.Suppressed {
		packed[flagsStart] |= suppressedFlag
	}
	return packed
}

// Unpack - byte slice to adjustment
func Unpack(packed []byte) (Adjustment, error) {
	if packLength != len(packed) {
		return Adjustment{}, fault.NotBalancePack
	}
	flags := packed[flagsStart]
	if 0 != flags&^suppressedFlag {
		return Adjustment{}, fault.NotBalancePack
	}
	return Adjustment{
		Count:      int64(binary.BigEndian.Uint64(packed[countStart:countFinish])),
		Suppressed: 0 != flags&suppressedFlag,
	}, nil
}

// Total - combine with the primary contribution
func (a Adjustment) Total(hasPrimary bool) int64 {
	total := a.Count
	if hasPrimary && !a.Suppressed {
		total += 1
	}
	return total
}

// Ledger - the adjustment table
type Ledger struct {
	pool storage.Handle
}

// New - create a ledger over a storage pool
func New(pool storage.Handle) *Ledger {
	return &Ledger{
		pool: pool,
	}
}

// Get - the adjustment for an address, zero if never written
func (l *Ledger) Get(trx storage.Transaction, a address.Address) Adjustment {
	var packed []byte
	if nil == trx {
		packed = l.pool.Get(a[:])
	} else {
		packed = trx.Get(l.pool, a[:])
	}
	if nil == packed {
		return Adjustment{}
	}

	adj, err := Unpack(packed)
	if nil != err {
		logger.Criticalf("balance.Get: address: %s  packed: %x  error: %s", a, packed, err)
		logger.Panic("balance.Get: database corrupt")
	}
	return adj
}

// Add - change the adjustment by delta
func (l *Ledger) Add(trx storage.Transaction, a address.Address, delta int64) {
	adj := l.Get(trx, a)
	adj.Count += delta
	trx.Put(l.pool, a[:], adj.Pack())
}

// Suppress - stop counting the primary contribution
func (l *Ledger) Suppress(trx storage.Transaction, a address.Address) {
	adj := l.Get(trx, a)
	if adj.Suppressed {
		return
	}
	adj.Suppressed = true
	trx.Put(l.pool, a[:], adj.Pack())
}
