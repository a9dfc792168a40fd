package main

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/spf13/cobra"

	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
	"github.com/hashprotocol/AlgoTeal-interpreter/log"
	"github.com/hashprotocol/AlgoTeal-interpreter/protocol/config"
	"github.com/hashprotocol/AlgoTeal-interpreter/protocol/vm"
)

func newRunCmd(ctx context.Context, s *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] program.teal",
		Short: "run a program and print the final stack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(ctx, cmd.OutOrStdout(), s, args[0])
		},
	}
	f := cmd.Flags()
	f.StringVarP(&s.config, "config", "c", s.config, "configuration document")
	f.StringVarP(&s.output, "out", "o", s.output, "write the final state to this document")
	f.BoolVarP(&s.trace, "trace", "t", s.trace, "print each step")
	f.BoolVar(&s.coverage, "coverage", s.coverage, "print per-line execution counts")
	f.BoolVar(&s.autogen, "autogen", s.autogen, "fill missing configuration with zero values")
	f.IntVar(&s.maxSteps, "max-steps", s.maxSteps, "fail after `n` steps")
	f.DurationVar(&s.timeout, "timeout", s.timeout, "stop the run after this long")
	return cmd
}

func (s *settings) options(w io.Writer) []vm.Option {
	var opts []vm.Option
	if s.trace {
		opts = append(opts, vm.TraceTo(w))
	}
	if s.coverage {
		opts = append(opts, vm.WithCoverage())
	}
	if s.autogen {
		opts = append(opts, vm.WithMissing(vm.AutoGenerate()))
	}
	if s.maxSteps > 0 {
		opts = append(opts, vm.WithMaxSteps(s.maxSteps))
	}
	return opts
}

func run(ctx context.Context, w io.Writer, s *settings, file string) error {
	src, err := ioutil.ReadFile(file)
	if err != nil {
		return fail(ctx, w, errors.Wrap(err), "reading program")
	}
	var doc *config.Document
	if s.config != "" {
		doc, err = config.Load(s.config)
		if err != nil {
			return fail(ctx, w, err, "loading configuration")
		}
	}

	interp := vm.New(s.options(w)...)
	if err := interp.Load(string(src), doc); err != nil {
		return fail(ctx, w, err, "loading "+file)
	}
	log.Write(ctx, "program", file, "instructions", len(interp.Program().Tokens), "version", interp.Program().Version)

	runCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	runErr := interp.Run(runCtx)
	cx := interp.Context()
	writeStack(w, cx.Stack)
	if err := interp.WriteCoverage(w); err != nil {
		return errors.Wrap(err)
	}
	if s.output != "" {
		if err := config.Save(s.output, cx.Serialize()); err != nil {
			return fail(ctx, w, err, "saving state")
		}
	}
	if runErr != nil {
		return fail(ctx, w, runErr, "running "+file)
	}
	log.Messagef(ctx, "%s finished with %d stack values", file, len(cx.Stack))
	return nil
}

// writeStack prints the stack top first.
func writeStack(w io.Writer, stack []vm.Value) {
	fmt.Fprintf(w, "stack (%d):\n", len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		fmt.Fprintf(w, "%4d: %s\n", len(stack)-1-i, stack[i])
	}
}
