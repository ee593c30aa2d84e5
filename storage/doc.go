// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the avaiable tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ⧺            = concatenation of byte data
// 3. id           = item identifier as big endian uint64 (8 bytes)
// 4. index        = segment sequence number as big endian uint64 (8 bytes)
// 5. handle       = segment digest as 32 byte SHA3-256(data)
// 6. address      = 20 byte owner address
// 7. count        = successive index value as big endian uint64 (8 bytes)
//
// Primary assignment:
//
//   S ⧺ handle            - immutable segment blobs, written once
//                           data: address ⧺ address ⧺ …  (sorted, distinct)
//   L ⧺ index             - ordered list of committed segments
//                           data: handle
//
// Overrides:
//
//   O ⧺ id                - owner changes since primary assignment
//                           data: state(1 byte: 01=owned, 02=retired) ⧺ address
//
// Balances:
//
//   B ⧺ address           - adjustment relative to primary contribution
//                           data: signed adjustment (8 bytes) ⧺ flags(1 byte: 01=suppressed)
//
// Authorisation:
//
//   A ⧺ id                - one time approval
//                           data: address
//   P ⧺ owner ⧺ operator  - standing operator grant (deleted on revoke)
//                           data: 01
//
// Notifications:
//
//   E ⧺ count             - event log
//                           data: kind(1 byte) ⧺ address ⧺ address ⧺ id
//
// Counters:
//
//   C ⧺ name              - named counters (segments, events, retired)
//                           data: count
//
// Testing:
//   Z ⧺ key               - testing data
package storage
