// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/segmentledger/event"
	"github.com/bitmark-inc/segmentledger/storage"
)

var retiredCountKey = []byte("retired")

// queue - events produced by one operation
type queue []event.Event

func (q *queue) add(e event.Event) {
	*q = append(*q, e)
}

// update - run one mutating operation as a single storage transaction
//
// caller must hold the write lock
func (l *Ledger) update(operation string, f func(trx storage.Transaction, q *queue) error) error {

	trx, err := storage.NewDBTransaction()
	if nil != err {
		l.log.Errorf("%s: begin transaction error: %s", operation, err)
		l.failed.increment()
		return err
	}

	committed := false
	defer func() {
		if !committed && trx.InUse() {
			trx.Abort()
		}
	}()

	q := queue{}
	err = f(trx, &q)
	if nil != err {
		l.log.Warnf("%s: rejected: %s", operation, err)
		l.rejected.increment()
		return err
	}

	events := l.events.Append(trx, q)

	err = trx.Commit()
	if nil != err {
		l.log.Criticalf("%s: commit error: %s", operation, err)
		l.failed.increment()
		return err
	}
	committed = true
	l.committed.increment()

	l.log.Debugf("%s: committed with %d events", operation, len(events))

	for _, e := range events {
		for _, o := range l.observers {
			o.Notify(e)
		}
	}
	return nil
}

// retired - number of items currently retired
func (l *Ledger) retired(trx storage.Transaction) uint64 {
	var n uint64
	if nil == trx {
		n, _ = l.counters.GetN(retiredCountKey)
	} else {
		n, _ = trx.GetN(l.counters, retiredCountKey)
	}
	return n
}

func (l *Ledger) addRetired(trx storage.Transaction, delta int64) {
	n := l.retired(trx)
	trx.PutN(l.counters, retiredCountKey, uint64(int64(n)+delta))
}
