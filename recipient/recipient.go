// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package recipient - acceptance callbacks for items sent by the safe operations
package recipient

import (
	"github.com/bitmark-inc/segmentledger/address"
	"github.com/bitmark-inc/segmentledger/fault"
)

// Receiver - acceptance callback of a recipient
type Receiver interface {
	OnReceived(operator address.Address, from address.Address, id uint64, data []byte) bool
}

// Registry - the callback capability of addresses
type Registry interface {
	// Lookup - returns the receiver and whether the address is a
	// contract; a plain account accepts unconditionally, a contract
	// without a receiver is incompatible
	Lookup(a address.Address) (Receiver, bool)
}

// Check - run the acceptance callback of the recipient
func Check(registry Registry, operator address.Address, from address.Address, to address.Address, id uint64, data []byte) error {
	if nil == registry {
		return nil
	}
	receiver, contract := registry.Lookup(to)
	if !contract {
		return nil
	}
	if nil == receiver {
		return fault.UnsafeRecipient
	}
	if !receiver.OnReceived(operator, from, id, data) {
		return fault.UnsafeRecipient
	}
	return nil
}
