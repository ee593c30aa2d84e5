// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/segmentledger/address"
	"github.com/bitmark-inc/segmentledger/event"
	"github.com/bitmark-inc/segmentledger/fault"
	"github.com/bitmark-inc/segmentledger/override"
	"github.com/bitmark-inc/segmentledger/recipient"
	"github.com/bitmark-inc/segmentledger/storage"
)

// TransferFrom - move an item from its current owner
//
// a retired item can only be moved with a zero from by a caller the
// authority allows to revive it
func (l *Ledger) TransferFrom(caller address.Address, from address.Address, to address.Address, id uint64) error {
	l.Lock()
	defer l.Unlock()

	return l.update("transfer", func(trx storage.Transaction, q *queue) error {
		if to.IsZero() {
			return fault.InvalidRecipient
		}
		return l.move(trx, q, caller, &from, to, id)
	})
}

// SafeTransferFrom - as TransferFrom and the recipient must accept the item
func (l *Ledger) SafeTransferFrom(caller address.Address, from address.Address, to address.Address, id uint64, data []byte) error {
	l.Lock()
	defer l.Unlock()

	return l.update("safe-transfer", func(trx storage.Transaction, q *queue) error {
		if to.IsZero() {
			return fault.InvalidRecipient
		}
		err := l.move(trx, q, caller, &from, to, id)
		if nil != err {
			return err
		}
		return recipient.Check(l.recipients, caller, from, to, id, data)
	})
}

// Burn - retire an item
func (l *Ledger) Burn(caller address.Address, id uint64) error {
	l.Lock()
	defer l.Unlock()

	return l.update("burn", func(trx storage.Transaction, q *queue) error {
		return l.move(trx, q, caller, nil, address.Zero, id)
	})
}

// currentOwner - override owner if present else primary owner
//
// zero for unminted and retired items
func (l *Ledger) currentOwner(trx storage.Transaction, id uint64) (address.Address, override.Entry) {
	entry := l.overrides.Get(trx, id)
	if entry.Present() {
		return entry.CurrentOwner(), entry
	}
	return l.primary.OwnerAt(trx, id), entry
}

// move - change the owner of an item, a zero to retires it
//
// a nil from skips the from check and refuses retired items
func (l *Ledger) move(trx storage.Transaction, q *queue, caller address.Address, from *address.Address, to address.Address, id uint64) error {

	if 0 == id {
		return fault.ZeroId
	}

	owner, entry := l.currentOwner(trx, id)

	reviving := false
	if owner.IsZero() {
		if override.Retired != entry.State || nil == from || to.IsZero() {
			return fault.NotMinted
		}
		if !l.authority.MayRevive(caller, id) {
			return fault.NotMinted
		}
		reviving = true
	} else if !l.authority.MayOperate(l.grants.View(trx), caller, owner, id) {
		return fault.NotAuthorised
	}

	if nil != from && *from != owner {
		return fault.WrongFrom
	}

	switch entry.State {
	case override.Absent:
		l.balances.Suppress(trx, owner)
	case override.Owned:
		l.balances.Add(trx, owner, -1)
	}

	if to.IsZero() {
		l.overrides.Retire(trx, id)
		l.addRetired(trx, 1)
	} else {
		l.overrides.SetOwner(trx, id, to)
		l.balances.Add(trx, to, 1)
	}
	if reviving {
		l.addRetired(trx, -1)
	}

	l.grants.ClearApproval(trx, id)

	q.add(event.Event{
		Kind: event.Transfer,
		From: owner,
		To:   to,
		Id:   id,
	})
	return nil
}
