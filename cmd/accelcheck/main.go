// Copyright 2025 go-accelerate Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command accelcheck validates the assembled symbol table against a
// backend's export list: it resolves every catalog symbol at both
// precisions and reports which are missing. Run it after a toolchain or
// OS update to confirm the full binding surface still resolves before any
// process relies on it.
//
// Usage:
//
//	accelcheck                      # default backend for this host
//	accelcheck -backend fallback    # portable reference backend
//	accelcheck -backend accelerate  # native framework (darwin)
//	accelcheck -q                   # summary only
//
// Exits non-zero if any symbol fails to resolve.
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/samber/lo"

	"github.com/ajroetker/go-accelerate/accel"
)

var (
	backendFlag = flag.String("backend", "auto", "Backend to check: auto, accelerate, fallback")
	quiet       = flag.Bool("q", false, "Print the summary only")
)

type result struct {
	symbol   string
	op       string
	category string
	elem     string
	err      error
}

func main() {
	flag.Parse()

	b, err := pickBackend(*backendFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "accelcheck: %v\n", err)
		os.Exit(1)
	}

	results := check(b)

	if !*quiet {
		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SYMBOL\tOPERATION\tCATEGORY\tTYPE\tSTATUS")
		for _, r := range results {
			status := "ok"
			if r.err != nil {
				status = "MISSING: " + r.err.Error()
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.symbol, r.op, r.category, r.elem, status)
		}
		w.Flush()
		fmt.Println()
	}

	missing := lo.Filter(results, func(r result, _ int) bool { return r.err != nil })
	byCategory := lo.CountValuesBy(results, func(r result) string { return r.category })
	fmt.Printf("backend %s on %s host: %d symbols checked (%v), %d missing\n",
		b.Name(), accel.CurrentName(), len(results), byCategory, len(missing))

	if len(missing) > 0 {
		os.Exit(1)
	}
}

func pickBackend(name string) (accel.Backend, error) {
	switch name {
	case "auto":
		return accel.DefaultBackend(), nil
	case "fallback":
		return accel.Fallback(), nil
	case "accelerate":
		return accel.Accelerate()
	}
	return nil, fmt.Errorf("unknown backend %q", name)
}

func check(b accel.Backend) []result {
	var out []result
	for _, op := range accel.Operations() {
		for _, p := range accel.Precisions() {
			r := result{
				symbol:   op.Symbol(p),
				op:       op.Name,
				category: op.Category.String(),
				elem:     p.Type.String(),
			}
			switch op.Category {
			case accel.CategoryUnary:
				_, r.err = b.ResolveUnary(r.symbol)
			case accel.CategoryBinary:
				_, r.err = b.ResolveBinary(r.symbol)
			case accel.CategoryReduce:
				_, r.err = b.ResolveReduce(r.symbol)
			case accel.CategoryReduceIndexed:
				_, r.err = b.ResolveReduceIndex(r.symbol)
			}
			out = append(out, r)
		}
	}
	return out
}
