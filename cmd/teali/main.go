/*
Command teali runs a TEAL program against a configuration document.

Usage:

	teali run [flags] program.teal
	teali fields [txn|global|asset_holding|asset_params|app_params]
	teali opcodes

Defaults for the run flags come from the environment:

	TEALI_CONFIG     configuration document (.json, .yaml, .toml or .cbor)
	TEALI_OUTPUT     file to write the final state to
	TEALI_TRACE      print every step and the stack after it
	TEALI_COVERAGE   print per-line execution counts
	TEALI_AUTOGEN    fill missing configuration with zero values
	TEALI_MAX_STEPS  fail after this many steps (0 is no limit)
	TEALI_TIMEOUT    stop the run after this long, such as 5s (0 is no limit)
	TEALI_LOG_FILE   write log entries here instead of stderr

Command-line flags override the environment.
*/
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hashprotocol/AlgoTeal-interpreter/env"
	"github.com/hashprotocol/AlgoTeal-interpreter/log"
	"github.com/hashprotocol/AlgoTeal-interpreter/log/rotation"
)

const (
	logFileSize = 10 << 20
	logFileKeep = 3
)

type settings struct {
	config   string
	output   string
	trace    bool
	coverage bool
	autogen  bool
	maxSteps int
	timeout  time.Duration
}

func (s *settings) register() {
	env.StringVar(&s.config, "TEALI_CONFIG", "")
	env.StringVar(&s.output, "TEALI_OUTPUT", "")
	env.BoolVar(&s.trace, "TEALI_TRACE", false)
	env.BoolVar(&s.coverage, "TEALI_COVERAGE", false)
	env.BoolVar(&s.autogen, "TEALI_AUTOGEN", false)
	env.IntVar(&s.maxSteps, "TEALI_MAX_STEPS", 0)
	env.DurationVar(&s.timeout, "TEALI_TIMEOUT", 0)
}

var logFile = env.String("TEALI_LOG_FILE", "")

func main() {
	ctx := log.NewRunContext(context.Background())
	log.SetPrefix("app", "teali")
	defer log.RecoverAndLogError(ctx)

	var s settings
	s.register()
	if err := env.Parse(); err != nil {
		log.Fatal(ctx, log.KeyError, err)
	}
	if *logFile != "" {
		log.SetOutput(rotation.Create(*logFile, logFileSize, logFileKeep))
	}

	root := newRootCmd(ctx, &s, os.Stdout)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(ctx context.Context, s *settings, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "teali",
		Short:         "teali runs TEAL programs against simulated ledger state",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOutput(out)
	root.AddCommand(newRunCmd(ctx, s), newFieldsCmd(), newOpcodesCmd())
	return root
}

// fail logs err and formats it for the terminal.
func fail(ctx context.Context, w io.Writer, err error, what string) error {
	log.Error(ctx, err, what)
	fmt.Fprintf(w, "%s: %v\n", what, err)
	return err
}
