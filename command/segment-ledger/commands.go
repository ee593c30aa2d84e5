// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/segmentledger/address"
	"github.com/bitmark-inc/segmentledger/ledger"
	"github.com/bitmark-inc/segmentledger/segment"
)

const defaultEventCount = 20

// setup command handler
//
// commands that need neither the configuration file nor the database
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "version", "V":
		fmt.Printf("%s\n", version)

	case "help", "h", "?":
		usage(program)

	default:
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

func usage(program string) {
	fmt.Printf("usage: %s [--help] [--verbose] [--version] --config-file=FILE command arguments...\n", program)

	fmt.Printf("supported commands:\n\n")
	fmt.Printf("  help                                        (h)      - display this message\n")
	fmt.Printf("  version                                     (V)      - display version string\n")
	fmt.Printf("  config-test                                 (cfg)    - just check the configuration file\n")
	fmt.Printf("\n")
	fmt.Printf("  store FILE                                           - save an address list as a segment blob\n")
	fmt.Printf("  mint CALLER FILE                                     - mint an address list\n")
	fmt.Printf("  mint-handle CALLER HANDLE                            - mint a stored segment blob\n")
	fmt.Printf("  safe-mint CALLER HANDLE [DATA]                       - mint a stored blob, recipients must accept\n")
	fmt.Printf("  transfer CALLER FROM TO ID                           - move an item\n")
	fmt.Printf("  safe-transfer CALLER FROM TO ID [DATA]               - move an item, recipient must accept\n")
	fmt.Printf("  approve CALLER SPENDER ID                            - one time approval for an item\n")
	fmt.Printf("  operator CALLER OPERATOR true|false                  - grant or revoke an operator\n")
	fmt.Printf("  burn CALLER ID                                       - retire an item\n")
	fmt.Printf("\n")
	fmt.Printf("  owner ID                                             - current owner of an item\n")
	fmt.Printf("  balance ADDRESS                                      - number of items owned\n")
	fmt.Printf("  approved ID                                          - approved address of an item\n")
	fmt.Printf("  is-operator OWNER OPERATOR                           - check an operator grant\n")
	fmt.Printf("  uri ID                                               - metadata location of an item\n")
	fmt.Printf("  length                                               - number of items minted\n")
	fmt.Printf("  segments                                             - handles of all segments\n")
	fmt.Printf("  events [START [COUNT]]                               - list the event log\n")
	fmt.Printf("  info                                                 - collection summary\n")
	fmt.Printf("\n")
	fmt.Printf("  FILE has one hex address per line in increasing order, # starts a comment\n")
	fmt.Printf("\n")
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		json.Indent(&out, b, "", "  ")
		out.WriteTo(os.Stdout)
		os.Stdout.WriteString("\n")

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// isReadOnly - commands that never change the database
func isReadOnly(command string) bool {
	switch command {
	case "owner", "balance", "approved", "is-operator", "uri", "length", "segments", "events", "info":
		return true
	default:
		return false
	}
}

// data command handler
// the ledger is open so these commands can access and/or change it
func processDataCommand(log *logger.L, l *ledger.Ledger, arguments []string) {

	command := arguments[0]
	arguments = arguments[1:]

	switch command {

	case "store":
		checkArguments(command, arguments, 1, 1)
		raw, err := readAddressFile(arguments[0])
		failIf(command, err)
		h, err := l.StoreBlob(raw)
		failIf(command, err)
		fmt.Printf("%s\n", h)

	case "mint":
		checkArguments(command, arguments, 2, 2)
		caller := getAddress(command, arguments[0])
		raw, err := readAddressFile(arguments[1])
		failIf(command, err)
		n, err := l.Mint(caller, raw)
		failIf(command, err)
		log.Infof("minted: %d", n)
		fmt.Printf("minted: %d  length: %d\n", n, l.Length())

	case "mint-handle", "safe-mint":
		checkArguments(command, arguments, 2, 3)
		caller := getAddress(command, arguments[0])
		h := getHandle(command, arguments[1])
		var n uint64
		var err error
		if "safe-mint" == command {
			n, err = l.SafeMint(caller, h, getData(arguments, 2))
		} else {
			n, err = l.MintFromHandle(caller, h)
		}
		failIf(command, err)
		log.Infof("minted: %d from: %s", n, h)
		fmt.Printf("minted: %d  length: %d\n", n, l.Length())

	case "transfer", "safe-transfer":
		checkArguments(command, arguments, 4, 5)
		caller := getAddress(command, arguments[0])
		from := getAddress(command, arguments[1])
		to := getAddress(command, arguments[2])
		id := getId(command, arguments[3])
		var err error
		if "safe-transfer" == command {
			err = l.SafeTransferFrom(caller, from, to, id, getData(arguments, 4))
		} else {
			err = l.TransferFrom(caller, from, to, id)
		}
		failIf(command, err)
		fmt.Printf("transferred: %d  to: %s\n", id, to)

	case "approve":
		checkArguments(command, arguments, 3, 3)
		caller := getAddress(command, arguments[0])
		spender := getAddress(command, arguments[1])
		id := getId(command, arguments[2])
		failIf(command, l.Approve(caller, spender, id))

	case "operator":
		checkArguments(command, arguments, 3, 3)
		caller := getAddress(command, arguments[0])
		operator := getAddress(command, arguments[1])
		approved, err := strconv.ParseBool(arguments[2])
		failIf(command, err)
		failIf(command, l.SetApprovalForAll(caller, operator, approved))

	case "burn":
		checkArguments(command, arguments, 2, 2)
		caller := getAddress(command, arguments[0])
		id := getId(command, arguments[1])
		failIf(command, l.Burn(caller, id))
		fmt.Printf("burnt: %d\n", id)

	case "owner":
		checkArguments(command, arguments, 1, 1)
		owner, err := l.OwnerOf(getId(command, arguments[0]))
		failIf(command, err)
		fmt.Printf("%s\n", owner)

	case "balance":
		checkArguments(command, arguments, 1, 1)
		n, err := l.BalanceOf(getAddress(command, arguments[0]))
		failIf(command, err)
		fmt.Printf("%d\n", n)

	case "approved":
		checkArguments(command, arguments, 1, 1)
		a, err := l.GetApproved(getId(command, arguments[0]))
		failIf(command, err)
		fmt.Printf("%s\n", a)

	case "is-operator":
		checkArguments(command, arguments, 2, 2)
		owner := getAddress(command, arguments[0])
		operator := getAddress(command, arguments[1])
		fmt.Printf("%v\n", l.IsApprovedForAll(owner, operator))

	case "uri":
		checkArguments(command, arguments, 1, 1)
		uri, err := l.TokenURI(getId(command, arguments[0]))
		failIf(command, err)
		fmt.Printf("%s\n", uri)

	case "length":
		checkArguments(command, arguments, 0, 0)
		fmt.Printf("%d\n", l.Length())

	case "segments":
		checkArguments(command, arguments, 0, 0)
		printJson("", l.Segments())

	case "events":
		checkArguments(command, arguments, 0, 2)
		start := uint64(1)
		count := defaultEventCount
		if len(arguments) > 0 {
			start = getId(command, arguments[0])
		}
		if len(arguments) > 1 {
			n, err := strconv.Atoi(arguments[1])
			failIf(command, err)
			count = n
		}
		events, err := l.Events(start, count)
		failIf(command, err)
		printJson("", events)

	case "info":
		checkArguments(command, arguments, 0, 0)
		info := struct {
			Name        string            `json:"name"`
			Symbol      string            `json:"symbol"`
			Capacity    uint64            `json:"capacity"`
			Segments    int               `json:"segments"`
			Length      uint64            `json:"length"`
			TotalSupply uint64            `json:"totalSupply"`
			Events      uint64            `json:"events"`
			Statistics  ledger.Statistics `json:"statistics"`
		}{
			Name:        l.Name(),
			Symbol:      l.Symbol(),
			Capacity:    l.Capacity(),
			Segments:    len(l.Segments()),
			Length:      l.Length(),
			TotalSupply: l.TotalSupply(),
			Events:      l.EventCount(),
			Statistics:  l.Statistics(),
		}
		printJson("", info)

	default:
		exitwithstatus.Message("error: no such command: %s", command)
	}
}

func checkArguments(command string, arguments []string, minimum int, maximum int) {
	if len(arguments) < minimum || len(arguments) > maximum {
		exitwithstatus.Message("error: %s: expected %d to %d arguments, got: %d", command, minimum, maximum, len(arguments))
	}
}

func failIf(command string, err error) {
	if nil != err {
		exitwithstatus.Message("error: %s: %s", command, err)
	}
}

func getAddress(command string, s string) address.Address {
	a, err := address.Parse(s)
	if nil != err {
		exitwithstatus.Message("error: %s: address: %q  %s", command, s, err)
	}
	return a
}

func getHandle(command string, s string) segment.Handle {
	h := segment.Handle{}
	if err := h.UnmarshalText([]byte(s)); nil != err {
		exitwithstatus.Message("error: %s: handle: %q  %s", command, s, err)
	}
	return h
}

func getId(command string, s string) uint64 {
	id, err := strconv.ParseUint(s, 10, 64)
	if nil != err {
		exitwithstatus.Message("error: %s: id: %q  %s", command, s, err)
	}
	return id
}

// getData - optional data passed to acceptance callbacks
func getData(arguments []string, n int) []byte {
	if len(arguments) > n {
		return []byte(arguments[n])
	}
	return nil
}
