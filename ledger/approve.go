// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/segmentledger/address"
	"github.com/bitmark-inc/segmentledger/event"
	"github.com/bitmark-inc/segmentledger/fault"
	"github.com/bitmark-inc/segmentledger/storage"
)

// Approve - allow spender to move one item until its next move
//
// the authority decides who may approve, a zero spender clears the
// approval
func (l *Ledger) Approve(caller address.Address, spender address.Address, id uint64) error {
	l.Lock()
	defer l.Unlock()

	return l.update("approve", func(trx storage.Transaction, q *queue) error {
		if 0 == id {
			return fault.ZeroId
		}
		owner, _ := l.currentOwner(trx, id)
		if owner.IsZero() {
			return fault.NotMinted
		}
		if !l.authority.MayApprove(l.grants.View(trx), caller, owner, id) {
			return fault.NotAuthorised
		}

		l.grants.Approve(trx, id, spender)

		q.add(event.Event{
			Kind: event.Approval,
			From: owner,
			To:   spender,
			Id:   id,
		})
		return nil
	})
}

// SetApprovalForAll - grant or revoke operator rights over all items of caller
func (l *Ledger) SetApprovalForAll(caller address.Address, operator address.Address, approved bool) error {
	l.Lock()
	defer l.Unlock()

	return l.update("operator", func(trx storage.Transaction, q *queue) error {
		if caller.IsZero() || operator.IsZero() {
			return fault.ZeroAddress
		}

		l.grants.SetOperator(trx, caller, operator, approved)

		q.add(event.Event{
			Kind:     event.ApprovalForAll,
			From:     caller,
			To:       operator,
			Approved: approved,
		})
		return nil
	})
}
