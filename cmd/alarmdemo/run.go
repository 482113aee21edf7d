// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func runCmd() *cobra.Command {
	var (
		oneShots     int
		periodics    int
		intervalFlag string
		duration     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Arm a fleet of alarms and print their stats once done",
		RunE: func(cmd *cobra.Command, args []string) error {
			interval, err := parseInterval(intervalFlag)
			if err != nil {
				return err
			}

			f, err := newFleet(oneShots, periodics, interval)
			if err != nil {
				return err
			}
			defer f.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), duration)
			defer cancel()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return drainFirings(gctx, f.firings)
			})
			if err := g.Wait(); err != nil && ctx.Err() == nil {
				return err
			}

			return printStats(f)
		},
	}

	cmd.Flags().IntVar(&oneShots, "one-shots", 3, "Number of one-shot alarms to arm")
	cmd.Flags().IntVar(&periodics, "periodics", 2, "Number of periodic alarms to arm")
	cmd.Flags().StringVar(&intervalFlag, "interval", "200ms", "Base interval between consecutive alarms")
	cmd.Flags().DurationVar(&duration, "duration", 3*time.Second, "How long to let the fleet run")

	return cmd
}

// drainFirings consumes firing events until ctx is done, so the fleet's
// bounded firings channel never fills up and starts dropping events.
func drainFirings(ctx context.Context, firings <-chan firing) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-firings:
			fmt.Printf("%s  %-12s overdue=%s\n", ev.at.Format(time.RFC3339Nano), ev.name, ev.overdue)
		}
	}
}

func printStats(f *fleet) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Append([]string{"Alarm", "Scheduled", "Rescheduled", "Cancelled", "Avg Callback", "Max Overdue"})

	for _, a := range f.alarms {
		s := a.Stats()
		table.Append([]string{
			a.Name(),
			fmt.Sprintf("%d", s.Scheduled),
			fmt.Sprintf("%d", s.Rescheduled),
			fmt.Sprintf("%d", s.Cancelled),
			fmt.Sprintf("%dms", s.CallbackTime.AverageMs()),
			fmt.Sprintf("%dms", s.Overdue.MaxMs),
		})
	}

	table.Render()
	return nil
}
