// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - ownership of a sequentially numbered collection
//
// primary owners are held in immutable sorted segments, one per mint
// batch, with a sparse override table for every item moved since.
// Every mutating operation runs as one storage transaction under a
// single writer lock and is either committed whole or not at all.
package ledger

import (
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/segmentledger/authority"
	"github.com/bitmark-inc/segmentledger/balance"
	"github.com/bitmark-inc/segmentledger/event"
	"github.com/bitmark-inc/segmentledger/fault"
	"github.com/bitmark-inc/segmentledger/metadata"
	"github.com/bitmark-inc/segmentledger/override"
	"github.com/bitmark-inc/segmentledger/primary"
	"github.com/bitmark-inc/segmentledger/recipient"
	"github.com/bitmark-inc/segmentledger/segment"
	"github.com/bitmark-inc/segmentledger/storage"
)

// Handles - storage pools used by the ledger
type Handles struct {
	Segments    storage.Handle
	SegmentList storage.Handle
	Overrides   storage.Handle
	Balances    storage.Handle
	Approvals   storage.Handle
	Operators   storage.Handle
	Events      storage.Handle
	Counters    storage.Handle
}

// Options - collaborators and limits
type Options struct {
	Capacity    int                // addresses per segment, 0 for default
	CacheSize   int                // segments kept in memory, 0 for default
	SingleBatch bool               // only one mint is ever allowed
	Authority   authority.Provider // nil for authority.Standard
	Recipients  recipient.Registry // nil to accept every recipient
	Metadata    metadata.Resolver  // nil for empty metadata
}

// Ledger - the ownership ledger
type Ledger struct {
	sync.RWMutex

	log         *logger.L
	singleBatch bool
	counters    storage.Handle

	segments  *segment.Store
	primary   *primary.Index
	overrides *override.Table
	balances  *balance.Ledger
	grants    *authority.Store
	events    *event.Log

	authority  authority.Provider
	recipients recipient.Registry
	metadata   metadata.Resolver

	observers []event.Observer

	committed counter
	rejected  counter
	failed    counter
}

// New - create a ledger over storage pools
func New(handles Handles, options Options) (*Ledger, error) {

	capacity := options.Capacity
	if 0 == capacity {
		capacity = primary.DefaultCapacity
	}

	segments, err := segment.New(handles.Segments, options.CacheSize)
	if nil != err {
		return nil, err
	}

	index, err := primary.New(capacity, handles.SegmentList, handles.Counters, segments)
	if nil != err {
		return nil, err
	}

	provider := options.Authority
	if nil == provider {
		provider = authority.Standard{}
	}

	resolver := options.Metadata
	if nil == resolver {
		resolver = metadata.New(metadata.Configuration{})
	}

	l := &Ledger{
		log:         logger.New("ledger"),
		singleBatch: options.SingleBatch,
		counters:    handles.Counters,
		segments:    segments,
		primary:     index,
		overrides:   override.New(handles.Overrides),
		balances:    balance.New(handles.Balances),
		grants:      authority.NewStore(handles.Approvals, handles.Operators),
		events:      event.NewLog(handles.Events, handles.Counters),
		authority:   provider,
		recipients:  options.Recipients,
		metadata:    resolver,
	}

	l.log.Infof("capacity: %d  single batch: %v  segments: %d  items: %d",
		capacity, options.SingleBatch, index.Count(nil), index.Length(nil))

	return l, nil
}

// global ledger over the global storage pools
var globalData struct {
	sync.Mutex
	ledger *Ledger
}

// Initialise - create the global ledger, storage must be initialised
func Initialise(options Options) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil != globalData.ledger {
		return fault.AlreadyInitialised
	}

	handles := Handles{
		Segments:    storage.Pool.Segments,
		SegmentList: storage.Pool.SegmentList,
		Overrides:   storage.Pool.Overrides,
		Balances:    storage.Pool.Balances,
		Approvals:   storage.Pool.Approvals,
		Operators:   storage.Pool.Operators,
		Events:      storage.Pool.Events,
		Counters:    storage.Pool.Counters,
	}
	for _, h := range []*storage.PoolHandle{
		storage.Pool.Segments,
		storage.Pool.SegmentList,
		storage.Pool.Overrides,
		storage.Pool.Balances,
		storage.Pool.Approvals,
		storage.Pool.Operators,
		storage.Pool.Events,
		storage.Pool.Counters,
	} {
		if nil == h {
			return fault.DatabaseIsNotSet
		}
	}

	l, err := New(handles, options)
	if nil != err {
		return err
	}
	globalData.ledger = l
	return nil
}

// Finalise - release the global ledger
func Finalise() {
	globalData.Lock()
	defer globalData.Unlock()

	if nil != globalData.ledger {
		globalData.ledger.log.Info("finished")
		globalData.ledger = nil
	}
}

// Get - the global ledger, nil if not initialised
func Get() *Ledger {
	globalData.Lock()
	defer globalData.Unlock()
	return globalData.ledger
}

// AddObserver - deliver committed events to an observer
//
// delivery happens under the ledger lock so an observer must not call
// back into the ledger
func (l *Ledger) AddObserver(o event.Observer) {
	l.Lock()
	l.observers = append(l.observers, o)
	l.Unlock()
}
