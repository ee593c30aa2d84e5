// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/segmentledger/address"
	"github.com/bitmark-inc/segmentledger/authority"
	"github.com/bitmark-inc/segmentledger/configuration"
	"github.com/bitmark-inc/segmentledger/ledger"
	"github.com/bitmark-inc/segmentledger/metadata"
	"github.com/bitmark-inc/segmentledger/primary"
	"github.com/bitmark-inc/segmentledger/recipient"
	"github.com/bitmark-inc/segmentledger/segment"
	"github.com/bitmark-inc/segmentledger/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultLedgerDatabase   = "ledger.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "segment-ledger.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - location of the LevelDB files
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// Configuration - the contents of the Lua configuration file
type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	Database      DatabaseType `gluamapper:"database" json:"database"`

	SegmentCapacity  int    `gluamapper:"segment_capacity" json:"segment_capacity"`
	SegmentCacheSize int    `gluamapper:"segment_cache_size" json:"segment_cache_size"`
	SingleBatch      bool   `gluamapper:"single_batch" json:"single_batch"`
	Administrator    string `gluamapper:"administrator" json:"administrator"`

	Metadata   metadata.Configuration `gluamapper:"metadata" json:"metadata"`
	Recipients map[string]string      `gluamapper:"recipients" json:"recipients"`
	Logging    logger.Configuration   `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultLedgerDatabase,
		},

		SegmentCapacity:  primary.DefaultCapacity,
		SegmentCacheSize: segment.DefaultCacheSize,

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		if !util.IsPlainName(*f[0]) {
			return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
		}
		if nil != f[1] {
			*f[0] = util.EnsureAbsolute(*f[1], *f[0])
		}
	}

	// create directories if they do not already exist
	for _, d := range []string{
		options.Database.Directory,
		options.Logging.Directory,
	} {
		if err := os.MkdirAll(d, 0700); nil != err {
			return nil, err
		}
	}

	// optional administrator
	options.Administrator = strings.TrimSpace(options.Administrator)
	if "" != options.Administrator {
		if _, err := address.Parse(options.Administrator); nil != err {
			return nil, fmt.Errorf("administrator: %q  error: %s", options.Administrator, err)
		}
	}

	if options.SegmentCapacity <= 0 {
		return nil, fmt.Errorf("segment capacity: %d must be positive", options.SegmentCapacity)
	}

	// fail on any unknown policy before the ledger is opened
	for a, p := range options.Recipients {
		if _, err := address.Parse(a); nil != err {
			return nil, fmt.Errorf("recipient: %q  error: %s", a, err)
		}
		if _, err := recipient.ParsePolicy(p); nil != err {
			return nil, fmt.Errorf("recipient: %q  policy: %q  error: %s", a, p, err)
		}
	}

	return options, nil
}

// ledgerOptions - convert the configuration for the ledger
func ledgerOptions(options *Configuration) ledger.Options {

	var provider authority.Provider = authority.Standard{}
	if "" != options.Administrator {
		admin, _ := address.Parse(options.Administrator)
		provider = authority.NewAdministrator(admin)
	}

	registry := recipient.NewStatic()
	for a, p := range options.Recipients {
		to, _ := address.Parse(a)
		policy, _ := recipient.ParsePolicy(p)
		registry.RegisterPolicy(to, policy)
	}

	return ledger.Options{
		Capacity:    options.SegmentCapacity,
		CacheSize:   options.SegmentCacheSize,
		SingleBatch: options.SingleBatch,
		Authority:   provider,
		Recipients:  registry,
		Metadata:    metadata.New(options.Metadata),
	}
}
