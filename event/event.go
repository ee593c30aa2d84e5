// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package event - notifications of ownership and approval changes
package event

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/segmentledger/address"
	"github.com/bitmark-inc/segmentledger/fault"
)

// Kind - the flag byte
type Kind byte

// type codes for flag byte
const (
	Transfer       Kind = iota + 1 // From → To of Id, zero From is creation, zero To is retirement
	Approval       Kind = iota + 1 // From (owner) approves To (spender) for Id
	ApprovalForAll Kind = iota + 1 // From (owner) grants or revokes To (operator)
)

// internal conversion
func toString(kind Kind) ([]byte, error) {
	switch kind {
	case Transfer:
		return []byte("Transfer"), nil
	case Approval:
		return []byte("Approval"), nil
	case ApprovalForAll:
		return []byte("ApprovalForAll"), nil
	default:
		return []byte{}, fault.NotEventPack
	}
}

// String - convert a kind to its name
func (kind Kind) String() string {
	s, err := toString(kind)
	if nil != err {
		logger.Panicf("invalid event kind enumeration: %d", kind)
	}
	return string(s)
}

// MarshalText - convert kind to text
func (kind Kind) MarshalText() ([]byte, error) {
	return toString(kind)
}

// Event - one notification
type Event struct {
	N        uint64          `json:"n,string"`
	Kind     Kind            `json:"kind"`
	From     address.Address `json:"from"`
	To       address.Address `json:"to"`
	Id       uint64          `json:"id,string"`
	Approved bool            `json:"approved,omitempty"`
}

// structure of the packed event, N is the storage key
const (
	kindStart  = 0
	kindFinish = kindStart + 1

	fromStart  = kindFinish
	fromFinish = fromStart + address.Length

	toStart  = fromFinish
	toFinish = toStart + address.Length

	idStart  = toFinish
	idFinish = idStart + 8

	approvedStart  = idFinish
	approvedFinish = approvedStart + 1

	packLength = approvedFinish
)

// Pack - event to byte slice
func (e Event) Pack() []byte {
	packed := make([]byte, packLength)
	packed[kindStart] = byte(e.Kind)
	copy(packed[fromStart:fromFinish], e.From[:])
	copy(packed[toStart:toFinish], e.To[:])
	binary.BigEndian.PutUint64(packed[idStart:idFinish], e.Id)
	if e.Approved {
		packed[approvedStart] = 1
	}
	return packed
}

// Unpack - byte slice to event
func Unpack(n uint64, packed []byte) (Event, error) {
	if packLength != len(packed) {
		return Event{}, fault.NotEventPack
	}
	e := Event{
		N:        n,
		Kind:     Kind(packed[kindStart]),
		Id:       binary.BigEndian.Uint64(packed[idStart:idFinish]),
		Approved: 0 != packed[approvedStart],
	}
	if _, err := toString(e.Kind); nil != err {
		return Event{}, err
	}
	copy(e.From[:], packed[fromStart:fromFinish])
	copy(e.To[:], packed[toStart:toFinish])
	return e, nil
}

// Observer - receives events after the operation that raised them is committed
type Observer interface {
	Notify(Event)
}

// ObserverFunc - adapt a function to an observer
type ObserverFunc func(Event)

// Notify - call the function
func (f ObserverFunc) Notify(e Event) {
	f(e)
}
