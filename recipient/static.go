// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recipient

import (
	"strings"
	"sync"

	"github.com/bitmark-inc/segmentledger/address"
	"github.com/bitmark-inc/segmentledger/fault"
)

// Policy - fixed behaviour of a configured contract recipient
type Policy int

// possible policies
const (
	Accept       Policy = iota // callback accepts every item
	Reject                     // callback declines every item
	Incompatible               // contract without the callback
)

// ParsePolicy - from configuration text
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "accept":
		return Accept, nil
	case "reject":
		return Reject, nil
	case "incompatible":
		return Incompatible, nil
	default:
		return Accept, fault.InvalidPolicy
	}
}

// OnReceived - accept or decline according to the policy
func (p Policy) OnReceived(operator address.Address, from address.Address, id uint64, data []byte) bool {
	return Accept == p
}

// Static - registry of configured contract addresses
type Static struct {
	sync.RWMutex
	contracts map[address.Address]Receiver
}

// NewStatic - empty registry, every address is a plain account
func NewStatic() *Static {
	return &Static{
		contracts: make(map[address.Address]Receiver),
	}
}

// Register - mark an address as a contract with the given receiver
//
// a nil receiver marks a contract that cannot accept items
func (s *Static) Register(a address.Address, receiver Receiver) {
	s.Lock()
	s.contracts[a] = receiver
	s.Unlock()
}

// RegisterPolicy - mark an address as a contract with fixed behaviour
func (s *Static) RegisterPolicy(a address.Address, policy Policy) {
	if Incompatible == policy {
		s.Register(a, nil)
		return
	}
	s.Register(a, policy)
}

// Lookup - implement Registry
func (s *Static) Lookup(a address.Address) (Receiver, bool) {
	s.RLock()
	defer s.RUnlock()
	receiver, ok := s.contracts[a]
	return receiver, ok
}
