// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recipient_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/segmentledger/address"
	"github.com/bitmark-inc/segmentledger/fault"
	"github.com/bitmark-inc/segmentledger/recipient"
)

type recordingReceiver struct {
	calls int
	id    uint64
	data  []byte
}

func (r *recordingReceiver) OnReceived(operator address.Address, from address.Address, id uint64, data []byte) bool {
	r.calls += 1
	r.id = id
	r.data = data
	return true
}

func TestCheck(t *testing.T) {
	plain := address.Address{19: 1}
	accepting := address.Address{19: 2}
	rejecting := address.Address{19: 3}
	incompatible := address.Address{19: 4}
	recording := address.Address{19: 5}

	r := &recordingReceiver{}

	registry := recipient.NewStatic()
	registry.RegisterPolicy(accepting, recipient.Accept)
	registry.RegisterPolicy(rejecting, recipient.Reject)
	registry.RegisterPolicy(incompatible, recipient.Incompatible)
	registry.Register(recording, r)

	tests := []struct {
		to       address.Address
		expected error
	}{
		{plain, nil},
		{accepting, nil},
		{rejecting, fault.UnsafeRecipient},
		{incompatible, fault.UnsafeRecipient},
		{recording, nil},
	}

	for i, item := range tests {
		err := recipient.Check(registry, plain, address.Zero, item.to, 7, []byte("data"))
		assert.Equal(t, item.expected, err, "%d: to: %s", i, item.to)
	}

	assert.Equal(t, 1, r.calls, "receiver calls")
	assert.Equal(t, uint64(7), r.id, "receiver id")
	assert.Equal(t, []byte("data"), r.data, "receiver data")

	assert.Nil(t, recipient.Check(nil, plain, plain, rejecting, 1, nil), "nil registry must accept")
}

func TestParsePolicy(t *testing.T) {
	p, err := recipient.ParsePolicy("Reject")
	assert.Nil(t, err, "parse error")
	assert.Equal(t, recipient.Reject, p, "policy")

	_, err = recipient.ParsePolicy("maybe")
	assert.Equal(t, fault.InvalidPolicy, err, "unknown policy accepted")
}
