// Copyright (c) 2015 Arista Networks, Inc.  All rights reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package catalog loads a semicolon-delimited product catalog CSV into a linhash.Table and
// optionally keeps it in sync with the file on disk.
package catalog

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/brevane/linhash/linhash"
)

// Load reads a semicolon-delimited CSV of "ProductCode;Category" rows from path and
// returns a Table keyed by ProductCode. The first line is treated as a header and skipped
// unconditionally. Lines are trimmed of a trailing \r (tolerating CRLF line endings), blank
// lines are skipped, and any row whose key or value is empty after trimming surrounding
// whitespace is skipped.
func Load(path string) (*linhash.Table[string, string], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader parses catalog rows from r using the same rules as Load.
func LoadReader(r io.Reader) (*linhash.Table[string, string], error) {
	tbl := linhash.NewStringTable[string]()
	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			continue
		}
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		key, value, ok := splitRow(line)
		if !ok {
			continue
		}
		tbl.Insert(key, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tbl, nil
}

func splitRow(line string) (key, value string, ok bool) {
	parts := strings.SplitN(line, ";", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	key = strings.TrimSpace(parts[0])
	value = strings.TrimSpace(parts[1])
	if key == "" || value == "" {
		return "", "", false
	}
	return key, value, true
}
