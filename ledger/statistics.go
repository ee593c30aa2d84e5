// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"sync/atomic"
)

// counter - synchronously incremented, read without the ledger lock
type counter uint64

func (c *counter) increment() uint64 {
	return atomic.AddUint64((*uint64)(c), 1)
}

func (c *counter) value() uint64 {
	return atomic.LoadUint64((*uint64)(c))
}

// Statistics - operations since this ledger was opened
type Statistics struct {
	Committed uint64 `json:"committed"`
	Rejected  uint64 `json:"rejected"`
	Failed    uint64 `json:"failed"`
}

// Statistics - current operation counts
func (l *Ledger) Statistics() Statistics {
	return Statistics{
		Committed: l.committed.value(),
		Rejected:  l.rejected.value(),
		Failed:    l.failed.value(),
	}
}
