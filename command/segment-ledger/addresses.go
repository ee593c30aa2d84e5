// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bitmark-inc/segmentledger/address"
)

// readAddressFile - packed address list from a text file
func readAddressFile(fileName string) ([]byte, error) {
	f, err := os.Open(fileName)
	if nil != err {
		return nil, err
	}
	defer f.Close()

	return readAddresses(f)
}

// readAddresses - one hex address per line, blank lines and "#" comments ignored
//
// order is preserved, the ledger rejects unsorted lists
func readAddresses(r io.Reader) ([]byte, error) {
	list := []address.Address{}

	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n += 1
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if "" == line {
			continue
		}
		a, err := address.Parse(line)
		if nil != err {
			return nil, fmt.Errorf("line: %d  address: %q  error: %s", n, line, err)
		}
		list = append(list, a)
	}
	if err := scanner.Err(); nil != err {
		return nil, err
	}
	return address.Pack(list), nil
}
