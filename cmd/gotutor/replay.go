// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/gotutor/gotutor/runner"
)

func newReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <logfile>",
		Short: "step through a previously recorded execution log interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(args[0])
		},
	}
}

// runReplay opens an interactive (gotutor) prompt over a previously
// written {error, log, infer} envelope. pos indexes out.Log: -1 means
// "before the first event", len(out.Log) is never reached since next
// clamps at the last index.
func runReplay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	var out runner.Output
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	rl, err := readline.New("(gotutor) ")
	if err != nil {
		return err
	}
	defer rl.Close()

	pos := -1
	printEvent := func() {
		switch {
		case pos < 0:
			fmt.Println("(before first event)")
		case pos >= len(out.Log):
			fmt.Println("(end of log)")
		default:
			b, _ := json.MarshalIndent(out.Log[pos], "", "  ")
			fmt.Printf("[%d/%d] %s\n", pos, len(out.Log)-1, b)
		}
	}

	fmt.Printf("loaded %d events", len(out.Log))
	if out.Error != nil {
		fmt.Printf(" (terminated: %s)", out.Error.Type)
	}
	fmt.Println()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "q":
			return nil
		case "next", "n":
			if pos < len(out.Log)-1 {
				pos++
			}
			printEvent()
		case "prev", "p":
			if pos > -1 {
				pos--
			}
			printEvent()
		case "print":
			printEvent()
		case "goto":
			if len(fields) != 2 {
				fmt.Println("usage: goto <n>")
				continue
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Println("goto: expects an integer index")
				continue
			}
			if n < -1 {
				n = -1
			}
			if n > len(out.Log)-1 {
				n = len(out.Log) - 1
			}
			pos = n
			printEvent()
		default:
			fmt.Println("commands: next, prev, goto <n>, print, quit")
		}
	}
}
