package main

import (
	"flag"
	"fmt"
	"strconv"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() { usage() }
	return fs
}

func parseRound(s string) (uint64, error) {
	round, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("round must be a positive integer: %w", err)
	}
	if round < 1 {
		return 0, fmt.Errorf("round must be >= 1")
	}
	return round, nil
}
