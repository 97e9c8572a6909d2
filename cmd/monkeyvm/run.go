package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Yag000/Interpreter-Monkey/vm"
)

func (a *app) runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Execute a bytecode file and print its result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), args[0])
		},
	}
	flags := cmd.Flags()
	flags.Int("stack-size", 0, "Operand stack size")
	flags.Int("max-frames", 0, "Maximum call depth")
	flags.Bool("trace", false, "Log every executed instruction")
	flags.Duration("timeout", 0, "Abort execution after this duration")
	a.bind(flags, "stack-size", "max-frames", "trace", "timeout")
	return cmd
}

func (a *app) run(ctx context.Context, path string) error {
	bc, err := loadBytecode(path)
	if err != nil {
		return err
	}
	if n := a.v.GetInt("stack-size"); n > 0 {
		a.cfg.VM.StackSize = n
	}
	if n := a.v.GetInt("max-frames"); n > 0 {
		a.cfg.VM.MaxFrames = n
	}
	if a.v.GetBool("trace") {
		a.cfg.VM.Trace = true
	}
	logger := a.log
	if a.cfg.VM.Trace {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
		logger = logger.Level(zerolog.TraceLevel)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if timeout := a.v.GetDuration("timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result, err := vm.Run(ctx, bc, a.cfg.VMOptions(logger)...)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, result.Inspect())
	return nil
}
