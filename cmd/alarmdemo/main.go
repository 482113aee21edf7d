// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Command alarmdemo exercises the alarm scheduler from the command line:
// it arms a mix of one-shot and periodic alarms, watches them fire, and
// prints per-alarm statistics.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "alarmdemo",
		Short: "Drive and observe the alarm scheduler",
		Long:  `alarmdemo arms a mix of one-shot and periodic alarms and reports on them.`,
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseInterval(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid interval %q: %w", s, err)
	}
	return d, nil
}
