// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/segmentledger/address"
	"github.com/bitmark-inc/segmentledger/event"
	"github.com/bitmark-inc/segmentledger/fault"
	"github.com/bitmark-inc/segmentledger/recipient"
	"github.com/bitmark-inc/segmentledger/segment"
	"github.com/bitmark-inc/segmentledger/storage"
)

// StoreBlob - save a packed address list in the segment store
//
// the blob is not minted, its handle can be passed to MintFromHandle
func (l *Ledger) StoreBlob(raw []byte) (segment.Handle, error) {
	if _, err := address.Count(raw); nil != err {
		return segment.Handle{}, err
	}

	l.Lock()
	defer l.Unlock()

	var h segment.Handle
	err := l.update("store", func(trx storage.Transaction, q *queue) error {
		h = l.segments.Put(trx, raw)
		return nil
	})
	return h, err
}

// Mint - assign the next ids to a packed, strictly increasing address list
//
// input longer than one segment is split into full segments, the whole
// call is a single atomic unit
func (l *Ledger) Mint(caller address.Address, raw []byte) (uint64, error) {
	n, err := address.Count(raw)
	if nil != err {
		return 0, err
	}

	size := int(l.primary.Capacity()) * address.Length
	chunks := make([][]byte, 0, (len(raw)+size-1)/size)
	for start := 0; start < len(raw); start += size {
		finish := start + size
		if finish > len(raw) {
			finish = len(raw)
		}
		chunks = append(chunks, raw[start:finish])
	}

	l.Lock()
	defer l.Unlock()

	err = l.update("mint", func(trx storage.Transaction, q *queue) error {
		return l.mint(trx, q, caller, chunks, false, nil)
	})
	if nil != err {
		return 0, err
	}
	return uint64(n), nil
}

// MintFromHandle - mint a blob already present in the segment store
func (l *Ledger) MintFromHandle(caller address.Address, h segment.Handle) (uint64, error) {
	return l.mintHandle("mint-handle", caller, h, false, nil)
}

// SafeMint - mint from a handle, every recipient must accept its item
//
// a single refusal aborts the whole batch
func (l *Ledger) SafeMint(caller address.Address, h segment.Handle, data []byte) (uint64, error) {
	return l.mintHandle("safe-mint", caller, h, true, data)
}

func (l *Ledger) mintHandle(operation string, caller address.Address, h segment.Handle, safe bool, data []byte) (uint64, error) {
	l.Lock()
	defer l.Unlock()

	var n int
	err := l.update(operation, func(trx storage.Transaction, q *queue) error {
		blob, err := l.segments.Get(trx, h)
		if nil != err {
			return err
		}
		n, err = address.Count(blob)
		if nil != err {
			return err
		}
		if uint64(n) > l.primary.Capacity() {
			return fault.InvalidAddresses
		}
		return l.mint(trx, q, caller, [][]byte{blob}, safe, data)
	})
	if nil != err {
		return 0, err
	}
	return uint64(n), nil
}

// continuation - the address the next segment must start above
func (l *Ledger) continuation(trx storage.Transaction) (address.Address, error) {
	last, full, exists := l.primary.Last(trx)
	if !exists {
		return address.Zero, nil
	}
	if l.singleBatch {
		return address.Zero, fault.AlreadyMinted
	}
	if !full {
		return address.Zero, fault.IncompleteBatch
	}
	return last, nil
}

// mint - validate and append segments, each chunk becomes one segment
//
// all chunks except the last must be exactly full
func (l *Ledger) mint(trx storage.Transaction, q *queue, caller address.Address, chunks [][]byte, safe bool, data []byte) error {

	if !l.authority.MayMint(caller) {
		return fault.NotAuthorised
	}

	prev, err := l.continuation(trx)
	if nil != err {
		return err
	}

	id := l.primary.Length(trx)
	for _, chunk := range chunks {
		n, err := address.Count(chunk)
		if nil != err {
			return err
		}
		for i := 0; i < n; i += 1 {
			to := address.At(chunk, i)
			if !prev.Less(to) {
				return fault.AddressesNotSorted
			}
			prev = to
			id += 1

			if safe {
				err := recipient.Check(l.recipients, caller, address.Zero, to, id, data)
				if nil != err {
					return err
				}
			}

			q.add(event.Event{
				Kind: event.Transfer,
				From: address.Zero,
				To:   to,
				Id:   id,
			})
		}
	}

	for _, chunk := range chunks {
		h := l.segments.Put(trx, chunk)
		n := l.primary.Append(trx, h)
		l.log.Debugf("segment: %d  handle: %s  items: %d", n, h, len(chunk)/address.Length)
	}
	return nil
}
