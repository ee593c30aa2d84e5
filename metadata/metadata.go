// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package metadata - collection name, symbol and item URIs
package metadata

import (
	"strconv"
)

// Resolver - metadata of a collection
type Resolver interface {
	Name() string
	Symbol() string
	TokenURI(id uint64) string
}

// Configuration - fixed metadata from the configuration file
type Configuration struct {
	Name    string `gluamapper:"name" json:"name"`
	Symbol  string `gluamapper:"symbol" json:"symbol"`
	BaseURI string `gluamapper:"base_uri" json:"base_uri"`
}

// Static - metadata that never changes
type Static struct {
	name    string
	symbol  string
	baseURI string
}

// New - create a static resolver
func New(conf Configuration) *Static {
	return &Static{
		name:    conf.Name,
		symbol:  conf.Symbol,
		baseURI: conf.BaseURI,
	}
}

// Name - collection name
func (s *Static) Name() string {
	return s.name
}

// Symbol - collection symbol
func (s *Static) Symbol() string {
	return s.symbol
}

// TokenURI - base URI followed by the decimal id
//
// existence of the item is checked by the ledger
func (s *Static) TokenURI(id uint64) string {
	if "" == s.baseURI {
		return ""
	}
	return s.baseURI + strconv.FormatUint(id, 10)
}
