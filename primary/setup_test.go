// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package primary_test

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/segmentledger/storage"
)

var testDirectory string

func TestMain(m *testing.M) {
	dir, err := ioutil.TempDir("", "primary")
	if nil != err {
		panic(fmt.Sprintf("temp dir error: %s", err))
	}
	testDirectory = dir

	err = logger.Initialise(logger.Configuration{
		Directory: dir,
		File:      "primary.log",
		Size:      1048576,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "trace",
		},
	})
	if nil != err {
		panic(fmt.Sprintf("logger initialization failed: %s", err))
	}

	result := m.Run()

	logger.Finalise()
	os.RemoveAll(dir)
	os.Exit(result)
}

func setup(t *testing.T) string {
	databaseName := filepath.Join(testDirectory, t.Name()+".leveldb")
	os.RemoveAll(databaseName)
	err := storage.Initialise(databaseName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	return databaseName
}

func teardown(databaseName string) {
	storage.Finalise()
	os.RemoveAll(databaseName)
}
