// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package authority - who may mint, move and burn items
package authority

import (
	"github.com/bitmark-inc/segmentledger/address"
)

// Grants - the delegations recorded for items and owners
type Grants interface {
	Approved(id uint64) address.Address
	IsOperator(owner address.Address, operator address.Address) bool
}

// Provider - authorisation policy consulted by the ledger
type Provider interface {
	// MayMint - caller may commit a new batch
	MayMint(caller address.Address) bool

	// MayOperate - caller may move or burn item id currently held by owner
	MayOperate(grants Grants, caller address.Address, owner address.Address, id uint64) bool

	// MayApprove - caller may set the one-time approval of item id held by owner
	MayApprove(grants Grants, caller address.Address, owner address.Address, id uint64) bool

	// MayRevive - caller may move a retired item out of retirement
	MayRevive(caller address.Address, id uint64) bool
}

// Standard - owner, operator of the owner or approved for the item
//
// anyone may mint and retired items stay retired
type Standard struct{}

// MayMint - always
func (Standard) MayMint(caller address.Address) bool {
	return true
}

// MayOperate - owner, operator or approved
func (Standard) MayOperate(grants Grants, caller address.Address, owner address.Address, id uint64) bool {
	if caller.IsZero() || owner.IsZero() {
		return false
	}
	if caller == owner {
		return true
	}
	if grants.IsOperator(owner, caller) {
		return true
	}
	return grants.Approved(id) == caller
}

// MayApprove - owner or operator, an approved address cannot pass it on
func (Standard) MayApprove(grants Grants, caller address.Address, owner address.Address, id uint64) bool {
	if caller.IsZero() || owner.IsZero() {
		return false
	}
	return caller == owner || grants.IsOperator(owner, caller)
}

// MayRevive - never
func (Standard) MayRevive(caller address.Address, id uint64) bool {
	return false
}

// Administrator - standard rules plus one address that may act on any item
type Administrator struct {
	Standard
	Admin address.Address
}

// NewAdministrator - create a policy for an administrator
func NewAdministrator(admin address.Address) *Administrator {
	return &Administrator{
		Admin: admin,
	}
}

func (a *Administrator) isAdmin(caller address.Address) bool {
	return !caller.IsZero() && caller == a.Admin
}

// MayMint - only the administrator
func (a *Administrator) MayMint(caller address.Address) bool {
	return a.isAdmin(caller)
}

// MayOperate - administrator or standard rules
func (a *Administrator) MayOperate(grants Grants, caller address.Address, owner address.Address, id uint64) bool {
	if a.isAdmin(caller) {
		return true
	}
	return a.Standard.MayOperate(grants, caller, owner, id)
}

// MayApprove - administrator or standard rules
func (a *Administrator) MayApprove(grants Grants, caller address.Address, owner address.Address, id uint64) bool {
	if a.isAdmin(caller) {
		return true
	}
	return a.Standard.MayApprove(grants, caller, owner, id)
}

// MayRevive - only the administrator
func (a *Administrator) MayRevive(caller address.Address, id uint64) bool {
	return a.isAdmin(caller)
}
