// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gotutor/gotutor/runner"
)

const defaultModule = "examples/fibonacci.gt"

func newRunCmd() *cobra.Command {
	var module string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "run",
		Short: "run a gotutor source file and print its execution log as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := module
			if len(args) > 0 {
				path = args[0]
			}
			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			out := runner.Run(string(src), timeout)
			enc := json.NewEncoder(os.Stdout)
			return enc.Encode(out)
		},
	}
	cmd.Flags().StringVar(&module, "module", defaultModule, "path to a gotutor source file")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "wall-clock budget for the traced run (0 selects the default)")
	return cmd
}
