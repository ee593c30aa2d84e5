// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/segmentledger/address"
	"github.com/bitmark-inc/segmentledger/event"
	"github.com/bitmark-inc/segmentledger/fault"
	"github.com/bitmark-inc/segmentledger/segment"
)

// OwnerOf - current owner of a live item
func (l *Ledger) OwnerOf(id uint64) (address.Address, error) {
	if 0 == id {
		return address.Zero, fault.ZeroId
	}

	l.RLock()
	defer l.RUnlock()

	owner, _ := l.currentOwner(nil, id)
	if owner.IsZero() {
		return address.Zero, fault.NotMinted
	}
	return owner, nil
}

// BalanceOf - number of live items owned by an address
func (l *Ledger) BalanceOf(a address.Address) (uint64, error) {
	if a.IsZero() {
		return 0, fault.ZeroAddress
	}

	l.RLock()
	defer l.RUnlock()

	adj := l.balances.Get(nil, a)
	total := adj.Total(l.primary.HasPrimary(nil, a))
	if total < 0 {
		logger.Criticalf("ledger.BalanceOf: address: %s  adjustment: %+v  negative balance", a, adj)
		logger.Panic("ledger.BalanceOf: database corrupt")
	}
	return uint64(total), nil
}

// GetApproved - the address approved for a live item, zero if none
func (l *Ledger) GetApproved(id uint64) (address.Address, error) {
	if 0 == id {
		return address.Zero, fault.ZeroId
	}

	l.RLock()
	defer l.RUnlock()

	owner, _ := l.currentOwner(nil, id)
	if owner.IsZero() {
		return address.Zero, fault.NotMinted
	}
	return l.grants.Approved(nil, id), nil
}

// IsApprovedForAll - true if operator may act for owner
func (l *Ledger) IsApprovedForAll(owner address.Address, operator address.Address) bool {
	l.RLock()
	defer l.RUnlock()

	return l.grants.IsOperator(nil, owner, operator)
}

// Capacity - addresses per segment
func (l *Ledger) Capacity() uint64 {
	return l.primary.Capacity()
}

// Length - number of items ever minted
func (l *Ledger) Length() uint64 {
	l.RLock()
	defer l.RUnlock()

	return l.primary.Length(nil)
}

// TotalSupply - number of live items
func (l *Ledger) TotalSupply() uint64 {
	l.RLock()
	defer l.RUnlock()

	return l.primary.Length(nil) - l.retired(nil)
}

// Segments - handles of all committed segments in mint order
func (l *Ledger) Segments() []segment.Handle {
	l.RLock()
	defer l.RUnlock()

	return l.primary.Handles(nil)
}

// Segment - the packed address list of a stored segment
func (l *Ledger) Segment(h segment.Handle) ([]byte, error) {
	l.RLock()
	defer l.RUnlock()

	return l.segments.Get(nil, h)
}

// Name - collection name
func (l *Ledger) Name() string {
	return l.metadata.Name()
}

// Symbol - collection symbol
func (l *Ledger) Symbol() string {
	return l.metadata.Symbol()
}

// TokenURI - metadata location of a live item
func (l *Ledger) TokenURI(id uint64) (string, error) {
	if _, err := l.OwnerOf(id); nil != err {
		return "", err
	}
	return l.metadata.TokenURI(id), nil
}

// most events returned by one Events call
const maximumEventCount = 1000

// Events - committed events from sequence number start (1 based)
//
// count above maximumEventCount is reduced to it
func (l *Ledger) Events(start uint64, count int) ([]event.Event, error) {
	if count <= 0 {
		return nil, fault.InvalidCount
	}
	if count > maximumEventCount {
		count = maximumEventCount
	}

	l.RLock()
	defer l.RUnlock()

	return l.events.List(start, count)
}

// EventCount - number of committed events
func (l *Ledger) EventCount() uint64 {
	l.RLock()
	defer l.RUnlock()

	return l.events.Count()
}
