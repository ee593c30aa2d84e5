// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/segmentledger/address"
	"github.com/bitmark-inc/segmentledger/balance"
	"github.com/bitmark-inc/segmentledger/override"
)

func TestDecode(t *testing.T) {
	a := address.Address{19: 0x0a}
	id := []byte{0, 0, 0, 0, 0, 0, 0, 3}

	tests := []struct {
		tag      string
		key      []byte
		value    []byte
		expected string
	}{
		{"O", id, override.Entry{State: override.Owned, Owner: a}.Pack(), "id: 3  state: Owned  owner: " + a.String()},
		{"O", id, override.Entry{State: override.Retired}.Pack(), "id: 3  state: Retired  owner: " + address.Zero.String()},
		{"B", a[:], balance.Adjustment{Count: 2, Suppressed: true}.Pack(), "address: " + a.String() + "  adjustment: 2  suppressed: true"},
		{"C", []byte("segments"), id, `counter: "segments" = 3`},
		{"S", nil, a[:], "segment: 1 addresses  first: " + a.String() + "  last: " + a.String()},
		{"Z", nil, nil, ""},
	}
	for i, item := range tests {
		assert.Equal(t, item.expected, decode(item.tag, item.key, item.value), "%d: decode", i)
	}

	assert.Contains(t, decode("O", id, []byte{1}), "override error", "bad override")
	assert.Contains(t, decode("S", nil, []byte{1}), "segment error", "bad segment")
}
