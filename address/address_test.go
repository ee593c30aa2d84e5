// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/segmentledger/address"
	"github.com/bitmark-inc/segmentledger/fault"
)

const hexText = "0x00000000000000000000000000000000000000ff"

func TestParseAndString(t *testing.T) {
	a, err := address.Parse(hexText)
	assert.Nil(t, err, "parse error")
	assert.Equal(t, byte(0xff), a[address.Length-1], "wrong last byte")
	assert.Equal(t, hexText, a.String(), "round trip string")

	b, err := address.Parse(hexText[2:])
	assert.Nil(t, err, "parse without prefix error")
	assert.Equal(t, a, b, "prefix should be optional")

	_, err = address.Parse("0x1234")
	assert.Equal(t, fault.NotAddress, err, "short text accepted")

	_, err = address.Parse("0x00000000000000000000000000000000000000zz")
	assert.Equal(t, fault.NotAddress, err, "non hex accepted")
}

func TestScan(t *testing.T) {
	var a address.Address
	n, err := fmt.Sscan(hexText, &a)
	assert.Nil(t, err, "scan error")
	assert.Equal(t, 1, n, "scan count")
	assert.Equal(t, hexText, fmt.Sprintf("%s", a), "scanned value")
}

func TestOrdering(t *testing.T) {
	low := address.Address{19: 1}
	high := address.Address{0: 1}

	assert.True(t, address.Zero.Less(low), "zero must be lowest")
	assert.True(t, low.Less(high), "big endian ordering")
	assert.False(t, high.Less(low), "reversed ordering")
	assert.Equal(t, 0, low.Compare(low), "equal compare")
	assert.True(t, address.Zero.IsZero(), "zero")
	assert.False(t, low.IsZero(), "not zero")
}

func TestPackCountAt(t *testing.T) {
	list := []address.Address{{19: 1}, {19: 2}, {19: 3}}
	raw := address.Pack(list)

	n, err := address.Count(raw)
	assert.Nil(t, err, "count error")
	assert.Equal(t, 3, n, "count")

	for i, a := range list {
		assert.Equal(t, a, address.At(raw, i), "address at %d", i)
	}
	assert.Equal(t, address.Zero, address.At(raw, 3), "past end must be zero")
	assert.Equal(t, address.Zero, address.At(raw, -1), "negative must be zero")

	_, err = address.Count(nil)
	assert.Equal(t, fault.InvalidAddresses, err, "empty accepted")

	_, err = address.Count(raw[:len(raw)-1])
	assert.Equal(t, fault.InvalidAddresses, err, "misaligned accepted")
}
