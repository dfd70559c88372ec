// Copyright (c) 2015 Arista Networks, Inc.  All rights reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package dataset generates synthetic ProductCode;Category CSV data for exercising the
// catalog loader and the linhash table at scale.
package dataset

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/brevane/linhash/sync/semaphore"
)

// DefaultCategories are the categories cycled through by Generate when none are supplied.
var DefaultCategories = []string{"Electronics", "Clothing", "Books", "Home", "Sports"}

// Generate writes a semicolon-delimited CSV of count rows to w: a header line
// "ProductCode;Category" followed by count rows "PRODxxxxxx;Category", where xxxxxx is the
// 1-based row number zero-padded to six digits and Category cycles through categories (or
// DefaultCategories if categories is empty).
func Generate(w io.Writer, count int, categories []string) error {
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("ProductCode;Category\n"); err != nil {
		return err
	}
	for i := 1; i <= count; i++ {
		category := categories[(i-1)%len(categories)]
		if _, err := fmt.Fprintf(bw, "PROD%06d;%s\n", i, category); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// rowChunkSize is the number of rows each GenerateConcurrent worker renders per chunk.
const rowChunkSize = 1000

// GenerateConcurrent behaves like Generate but renders the CSV in parallel chunks, bounded
// by a weighted semaphore of workers concurrent goroutines, before writing the chunks out
// in order. Useful for the larger datasets gendataset is meant to produce, where most of
// the cost is formatting rows rather than the sequential write itself.
func GenerateConcurrent(w io.Writer, count int, categories []string, workers int64) error {
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	if workers < 1 {
		workers = 1
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("ProductCode;Category\n"); err != nil {
		return err
	}

	numChunks := (count + rowChunkSize - 1) / rowChunkSize
	chunks := make([][]byte, numChunks)

	sem := semaphore.NewWeighted(workers)
	ctx := context.Background()
	var wg sync.WaitGroup
	for c := 0; c < numChunks; c++ {
		start := c*rowChunkSize + 1
		end := start + rowChunkSize - 1
		if end > count {
			end = count
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			return err
		}
		wg.Add(1)
		go func(c, start, end int) {
			defer wg.Done()
			defer sem.Release(1)
			var buf bytes.Buffer
			for i := start; i <= end; i++ {
				category := categories[(i-1)%len(categories)]
				fmt.Fprintf(&buf, "PROD%06d;%s\n", i, category)
			}
			chunks[c] = buf.Bytes()
		}(c, start, end)
	}
	wg.Wait()

	for _, chunk := range chunks {
		if _, err := bw.Write(chunk); err != nil {
			return err
		}
	}
	return bw.Flush()
}
