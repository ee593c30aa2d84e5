// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package authority

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/segmentledger/address"
	"github.com/bitmark-inc/segmentledger/storage"
)

// Store - persistent one time approvals and operator grants
//
//   approvals: id → spender
//   operators: owner ⧺ operator → 01
type Store struct {
	approvals storage.Handle
	operators storage.Handle
}

// NewStore - create a grant store over storage pools
func NewStore(approvals storage.Handle, operators storage.Handle) *Store {
	return &Store{
		approvals: approvals,
		operators: operators,
	}
}

func idKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

func operatorKey(owner address.Address, operator address.Address) []byte {
	key := make([]byte, 0, 2*address.Length)
	key = append(key, owner[:]...)
	return append(key, operator[:]...)
}

// Approved - the one time approval for an item, zero if none
func (s *Store) Approved(trx storage.Transaction, id uint64) address.Address {
	var packed []byte
	if nil == trx {
		packed = s.approvals.Get(idKey(id))
	} else {
		packed = trx.Get(s.approvals, idKey(id))
	}
	a := address.Address{}
	if nil == packed {
		return a
	}
	err := address.FromBytes(&a, packed)
	logger.PanicIfError("authority.Approved", err)
	return a
}

// Approve - set the one time approval, a zero spender clears it
func (s *Store) Approve(trx storage.Transaction, id uint64, spender address.Address) {
	if spender.IsZero() {
		s.ClearApproval(trx, id)
		return
	}
	trx.Put(s.approvals, idKey(id), spender[:])
}

// ClearApproval - remove any one time approval
func (s *Store) ClearApproval(trx storage.Transaction, id uint64) {
	if trx.Has(s.approvals, idKey(id)) {
		trx.Delete(s.approvals, idKey(id))
	}
}

// IsOperator - operator holds a standing grant from owner
func (s *Store) IsOperator(trx storage.Transaction, owner address.Address, operator address.Address) bool {
	if nil == trx {
		return s.operators.Has(operatorKey(owner, operator))
	}
	return trx.Has(s.operators, operatorKey(owner, operator))
}

// SetOperator - grant or revoke a standing grant
func (s *Store) SetOperator(trx storage.Transaction, owner address.Address, operator address.Address, approved bool) {
	key := operatorKey(owner, operator)
	if approved {
		trx.Put(s.operators, key, []byte{0x01})
	} else {
		trx.Delete(s.operators, key)
	}
}

// View - grants as seen from a transaction (nil for committed data)
func (s *Store) View(trx storage.Transaction) Grants {
	return &view{
		store: s,
		trx:   trx,
	}
}

type view struct {
	store *Store
	trx   storage.Transaction
}

func (v *view) Approved(id uint64) address.Address {
	return v.store.Approved(v.trx, id)
}

func (v *view) IsOperator(owner address.Address, operator address.Address) bool {
	return v.store.IsOperator(v.trx, owner, operator)
}
