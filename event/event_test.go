// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/segmentledger/address"
	"github.com/bitmark-inc/segmentledger/event"
	"github.com/bitmark-inc/segmentledger/fault"
	"github.com/bitmark-inc/segmentledger/storage"
)

func TestKindText(t *testing.T) {
	assert.Equal(t, "Transfer", event.Transfer.String(), "transfer")
	assert.Equal(t, "Approval", event.Approval.String(), "approval")
	assert.Equal(t, "ApprovalForAll", event.ApprovalForAll.String(), "approval for all")

	_, err := event.Kind(0).MarshalText()
	assert.Equal(t, fault.NotEventPack, err, "invalid kind")
}

func TestEventPacking(t *testing.T) {
	e := event.Event{
		N:        7,
		Kind:     event.ApprovalForAll,
		From:     address.Address{1},
		To:       address.Address{2},
		Approved: true,
	}
	back, err := event.Unpack(7, e.Pack())
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, e, back, "unpacked")

	_, err = event.Unpack(1, e.Pack()[1:])
	assert.Equal(t, fault.NotEventPack, err, "short")
}

func TestLog(t *testing.T) {
	name := setup(t)
	defer teardown(name)

	log := event.NewLog(storage.Pool.Events, storage.Pool.Counters)
	assert.Equal(t, uint64(0), log.Count(), "empty")

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "transaction error")
	assert.Equal(t, 0, len(log.Append(trx, nil)), "nothing appended")
	events := log.Append(trx, []event.Event{
		{Kind: event.Transfer, To: address.Address{1}, Id: 1},
		{Kind: event.Transfer, To: address.Address{2}, Id: 2},
		{Kind: event.Approval, From: address.Address{2}, To: address.Address{3}, Id: 2},
	})
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	for i, e := range events {
		assert.Equal(t, uint64(i+1), e.N, "%d: sequence", i)
	}
	assert.Equal(t, uint64(3), log.Count(), "count")

	listed, err := log.List(2, 10)
	assert.Nil(t, err, "list error")
	assert.Equal(t, events[1:], listed, "from second")

	listed, err = log.List(0, 1)
	assert.Nil(t, err, "list error")
	assert.Equal(t, events[:1], listed, "first only")

	trx, err = storage.NewDBTransaction()
	assert.Nil(t, err, "transaction error")
	more := log.Append(trx, []event.Event{{Kind: event.Transfer, From: address.Address{3}, Id: 3}})
	assert.Equal(t, uint64(4), more[0].N, "continues numbering")
	trx.Abort()
	assert.Equal(t, uint64(3), log.Count(), "count after abort")
}

func TestObserverFunc(t *testing.T) {
	seen := []event.Event{}
	var o event.Observer = event.ObserverFunc(func(e event.Event) {
		seen = append(seen, e)
	})
	o.Notify(event.Event{N: 1})
	assert.Equal(t, []event.Event{{N: 1}}, seen, "delivered")
}
