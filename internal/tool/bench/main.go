// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// +build ignore

// Benchmark tool to compare compression ratio and throughput between ac,
// lzw, and reference codecs (flate, lzma) on the same input files.
//
// Example usage:
//
//	$ go run main.go -tests ratio -codecs ac-adaptive,lzw-variable -files testdata/repeats.bin
//
//	BENCHMARK: ratio
//		benchmark             ac-adaptive  lzw-variable
//		testdata/repeats.bin  1.06         1.70
//
//	RUNTIME: 139.776181ms
package main

import (
	"flag"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/gocodecs/accodec/internal/testutil"
	"github.com/gocodecs/accodec/internal/tool/bench"
)

const (
	testRatio   = "ratio"
	testEncRate = "encRate"
	testDecRate = "decRate"
)

func defaultCodecs() string {
	m := make(map[string]bool)
	for k := range bench.Encoders {
		m[k] = true
	}
	for k := range bench.Decoders {
		m[k] = true
	}
	var s []string
	for k := range m {
		s = append(s, k)
	}
	sort.Strings(s)
	return strings.Join(s, ",")
}

func main() {
	f0 := flag.String("tests", testRatio+","+testEncRate+","+testDecRate, "list of benchmark tests to run")
	f1 := flag.String("codecs", defaultCodecs(), "list of codecs to benchmark")
	f2 := flag.String("files", "", "comma-separated list of input files to benchmark")
	flag.Parse()

	sep := regexp.MustCompile("[,:]")
	tests := sep.Split(*f0, -1)
	codecs := sep.Split(*f1, -1)
	files := sep.Split(*f2, -1)
	if *f2 == "" {
		fmt.Println("no -files given; nothing to benchmark")
		return
	}

	ts := time.Now()
	for _, t := range tests {
		runTest(t, codecs, files)
	}
	fmt.Printf("RUNTIME: %v\n", time.Since(ts))
}

func runTest(test string, codecs, files []string) {
	fmt.Printf("BENCHMARK: %s\n", test)

	var activeCodecs []string
	for _, c := range codecs {
		switch test {
		case testDecRate:
			if _, ok := bench.Decoders[c]; ok {
				activeCodecs = append(activeCodecs, c)
			}
		default:
			if _, ok := bench.Encoders[c]; ok {
				activeCodecs = append(activeCodecs, c)
			}
		}
	}
	if len(activeCodecs) == 0 {
		fmt.Println("\tSKIP: no codecs registered for this test")
		fmt.Println()
		return
	}

	cells := make([][]string, 1+len(files))
	cells[0] = append([]string{"benchmark"}, activeCodecs...)
	for i, file := range files {
		row := make([]string, 1+len(activeCodecs))
		row[0] = file
		input, err := testutil.LoadFile(file, -1)
		if err != nil {
			fmt.Printf("\tskipping %s: %v\n", file, err)
			continue
		}
		for j, c := range activeCodecs {
			row[1+j] = runOne(test, c, input)
		}
		cells[1+i] = row
	}
	printTable(cells)
	fmt.Println()
}

func runOne(test, codec string, input []byte) string {
	switch test {
	case testRatio:
		var buf countBuffer
		if err := bench.Encoders[codec](&buf, input); err != nil {
			return "err"
		}
		r := bench.Ratio(len(input), buf.n)
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return ""
		}
		return fmt.Sprintf("%.2f", r)
	case testEncRate:
		res := bench.BenchmarkEncoder(input, bench.Encoders[codec])
		return fmt.Sprintf("%.2f MB/s", float64(res.Bytes)*float64(res.N)/res.T.Seconds()/1e6)
	case testDecRate:
		var buf countBuffer
		if err := bench.Encoders[codec](&buf, input); err != nil {
			return "err"
		}
		res := bench.BenchmarkDecoder(buf.p, bench.Decoders[codec], len(input))
		return fmt.Sprintf("%.2f MB/s", float64(res.Bytes)*float64(res.N)/res.T.Seconds()/1e6)
	default:
		return ""
	}
}

// countBuffer is an io.Writer that both counts bytes written and retains
// them, so a single encode pass can serve both the ratio test (count only)
// and the decode-rate test (needs the compressed payload as input).
type countBuffer struct {
	n int
	p []byte
}

func (c *countBuffer) Write(b []byte) (int, error) {
	c.n += len(b)
	c.p = append(c.p, b...)
	return len(b), nil
}

func printTable(cells [][]string) {
	maxLens := make([]int, len(cells[0]))
	for _, row := range cells {
		for i, s := range row {
			if len(s) > maxLens[i] {
				maxLens[i] = len(s)
			}
		}
	}
	for _, row := range cells {
		fmt.Print("\t")
		for i, s := range row {
			fmt.Print(s + strings.Repeat(" ", 2+maxLens[i]-len(s)))
		}
		fmt.Println()
	}
}
