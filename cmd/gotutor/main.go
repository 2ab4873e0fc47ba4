// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The gotutor command runs and replays traced gotutor-source programs: a
// minimal "Python Tutor"-style step-by-step execution visualizer.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("gotutor: ")

	root := &cobra.Command{
		Use:           "gotutor",
		Short:         "trace and replay the execution of a small instructional language",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newReplayCmd())

	if err := root.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
