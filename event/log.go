// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package event

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/segmentledger/storage"
)

// key in the counters pool
var eventCountKey = []byte("events")

// Log - sequence numbered persistent record of events
type Log struct {
	pool     storage.Handle
	counters storage.Handle
}

// NewLog - create a log over storage pools
func NewLog(pool storage.Handle, counters storage.Handle) *Log {
	return &Log{
		pool:     pool,
		counters: counters,
	}
}

// Count - number of committed events
func (l *Log) Count() uint64 {
	n, _ := l.counters.GetN(eventCountKey)
	return n
}

// Append - number and store events, returns them with N set
func (l *Log) Append(trx storage.Transaction, events []Event) []Event {
	if 0 == len(events) {
		return events
	}
	n, _ := trx.GetN(l.counters, eventCountKey)

	key := make([]byte, 8)
	for i := range events {
		n += 1
		events[i].N = n
		binary.BigEndian.PutUint64(key, n)
		trx.Put(l.pool, key, events[i].Pack())
	}
	trx.PutN(l.counters, eventCountKey, n)
	return events
}

// List - committed events starting from sequence number start (1 based)
func (l *Log) List(start uint64, count int) ([]Event, error) {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, start)

	cursor := l.pool.NewFetchCursor().Seek(key)
	items, err := cursor.Fetch(count)
	if nil != err {
		return nil, err
	}

	events := make([]Event, 0, len(items))
	for _, item := range items {
		if 8 != len(item.Key) {
			logger.Panicf("event.List: invalid key: %x", item.Key)
		}
		e, err := Unpack(binary.BigEndian.Uint64(item.Key), item.Value)
		if nil != err {
			logger.Criticalf("event.List: key: %x  error: %s", item.Key, err)
			logger.Panic("event.List: database corrupt")
		}
		events = append(events, e)
	}
	return events, nil
}
