// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package main

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func watchCmd() *cobra.Command {
	var (
		periodics    int
		intervalFlag string
		duration     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Arm periodic alarms and render their firings live",
		RunE: func(cmd *cobra.Command, args []string) error {
			interval, err := parseInterval(intervalFlag)
			if err != nil {
				return err
			}

			pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgDarkGray)).
				WithTextStyle(pterm.NewStyle(pterm.FgLightCyan, pterm.Bold)).
				Println("alarmdemo — live watch")

			f, err := newFleet(0, periodics, interval)
			if err != nil {
				return err
			}
			defer f.Close()

			area, err := pterm.DefaultArea.Start()
			if err != nil {
				return err
			}
			defer area.Stop()

			counts := make(map[string]int, len(f.alarms))
			deadline := time.Now().Add(duration)
			for time.Now().Before(deadline) {
				select {
				case ev := <-f.firings:
					counts[ev.name]++
					area.Update(renderCounts(counts))
				case <-time.After(50 * time.Millisecond):
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&periodics, "periodics", 3, "Number of periodic alarms to arm")
	cmd.Flags().StringVar(&intervalFlag, "interval", "300ms", "Base interval between consecutive alarms")
	cmd.Flags().DurationVar(&duration, "duration", 10*time.Second, "How long to watch")

	return cmd
}

func renderCounts(counts map[string]int) string {
	data := pterm.TableData{{"Alarm", "Firings"}}
	for name, n := range counts {
		data = append(data, []string{name, fmt.Sprintf("%d", n)})
	}
	rendered, _ := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	return rendered
}
