// Copyright (c) 2015 Arista Networks, Inc.  All rights reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// The gendataset command writes a synthetic ProductCode;Category CSV file, for exercising
// catalog.Load and the linhash table at a chosen scale.
package main

import (
	"flag"
	"os"
	"strings"

	"github.com/aristanetworks/glog"

	"github.com/brevane/linhash/dataset"
)

var (
	outFlag        = flag.String("out", "catalog.csv", "Path to write the generated CSV to")
	countFlag      = flag.Int("count", 1000, "Number of product rows to generate")
	categoriesFlag = flag.String("categories", "",
		"Comma separated list of categories to cycle through; defaults to dataset.DefaultCategories")
	workersFlag = flag.Int64("workers", 1,
		"Number of chunks to render concurrently; 1 disables concurrency")
)

func main() {
	flag.Parse()

	var categories []string
	if *categoriesFlag != "" {
		categories = strings.Split(*categoriesFlag, ",")
	}

	f, err := os.Create(*outFlag)
	if err != nil {
		glog.Fatalf("creating %q: %v", *outFlag, err)
	}
	defer f.Close()

	if *workersFlag <= 1 {
		err = dataset.Generate(f, *countFlag, categories)
	} else {
		err = dataset.GenerateConcurrent(f, *countFlag, categories, *workersFlag)
	}
	if err != nil {
		glog.Fatalf("generating %q: %v", *outFlag, err)
	}
	glog.Infof("wrote %d rows to %s", *countFlag, *outFlag)
}
