// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package segment - write-once, content addressed blob store
//
// a blob is stored under the SHA3-256 digest of its content, so a
// handle always identifies the same bytes and a blob can never be
// rewritten.  Reads are cached since committed blobs never change.
package segment

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/segmentledger/fault"
	"github.com/bitmark-inc/segmentledger/storage"
)

// DefaultCacheSize - number of blobs kept in memory
const DefaultCacheSize = 64

// Store - the immutable segment store
type Store struct {
	log   *logger.L
	pool  storage.Handle
	cache *lru.Cache[Handle, []byte]
}

// New - create a store over a storage pool
func New(pool storage.Handle, cacheSize int) (*Store, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[Handle, []byte](cacheSize)
	if nil != err {
		return nil, err
	}
	return &Store{
		log:   logger.New("segment"),
		pool:  pool,
		cache: cache,
	}, nil
}

// Put - write a blob, returns its handle
//
// writing the same content twice yields the same handle and no new data
func (s *Store) Put(trx storage.Transaction, blob []byte) Handle {
	h := NewHandle(blob)
	if s.has(trx, h) {
		return h
	}

	stored := make([]byte, len(blob))
	copy(stored, blob)
	trx.Put(s.pool, h[:], stored)

	s.log.Debugf("put: %s  bytes: %d", h, len(blob))
	return h
}

// Has - check a handle refers to a stored blob
func (s *Store) Has(trx storage.Transaction, h Handle) bool {
	if s.cache.Contains(h) {
		return true
	}
	return s.has(trx, h)
}

func (s *Store) has(trx storage.Transaction, h Handle) bool {
	if nil == trx {
		return s.pool.Has(h[:])
	}
	return trx.Has(s.pool, h[:])
}

// Get - the whole blob
//
// this returns the cached element - copy the result if it must be modified
func (s *Store) Get(trx storage.Transaction, h Handle) ([]byte, error) {
	if blob, ok := s.cache.Get(h); ok {
		return blob, nil
	}

	// only committed blobs are cached, a pending one may yet be aborted
	committed := true
	var blob []byte
	if nil == trx {
		blob = s.pool.Get(h[:])
	} else {
		blob = trx.Get(s.pool, h[:])
		committed = s.pool.Has(h[:])
	}
	if nil == blob {
		return nil, fault.MissingSegment
	}

	if NewHandle(blob) != h {
		s.log.Criticalf("segment: %s  content digest mismatch", h)
		logger.Panic("segment: database corrupt")
	}

	if committed {
		s.cache.Add(h, blob)
	}
	return blob, nil
}

// Size - number of bytes in a blob
func (s *Store) Size(trx storage.Transaction, h Handle) (int, error) {
	blob, err := s.Get(trx, h)
	if nil != err {
		return 0, err
	}
	return len(blob), nil
}

// Read - a bounded byte range of a blob
//
// bytes beyond the end of the blob read as zero
func (s *Store) Read(trx storage.Transaction, h Handle, offset int, length int) ([]byte, error) {
	if offset < 0 || length < 0 {
		return nil, fault.InvalidCount
	}
	blob, err := s.Get(trx, h)
	if nil != err {
		return nil, err
	}

	buffer := make([]byte, length)
	if offset < len(blob) {
		copy(buffer, blob[offset:])
	}
	return buffer, nil
}
