package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Yag000/Interpreter-Monkey/internal/config"
)

// app holds the state shared by all subcommands.
type app struct {
	v      *viper.Viper
	stdout io.Writer
	stderr io.Writer
	cfg    *config.Config
	log    zerolog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		v:      viper.New(),
		stdout: stdout,
		stderr: stderr,
		log:    zerolog.Nop(),
	}
	root := &cobra.Command{
		Use:           "monkeyvm",
		Short:         "Run and inspect compiled Monkey bytecode",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.String("config", "", "Path to a monkeyvm.toml file")
	flags.String("log-level", "", "Log level (trace, debug, info, warn, error)")
	flags.String("log-format", "", "Log format (auto, console, json)")
	flags.Bool("no-color", false, "Disable colored output")
	a.bind(flags, "config", "log-level", "log-format", "no-color")

	// Settings can also come from MONKEYVM_* environment variables,
	// e.g. MONKEYVM_LOG_LEVEL=debug.
	a.v.SetEnvPrefix("MONKEYVM")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(a.runCmd(), a.disCmd(), a.validateCmd())
	return root
}

func (a *app) bind(flags *pflag.FlagSet, names ...string) {
	for _, name := range names {
		if err := a.v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// setup loads the configuration file and applies flag and environment
// overrides on top of it.
func (a *app) setup() error {
	var err error
	if path := a.v.GetString("config"); path != "" {
		a.cfg, err = config.Load(path)
	} else {
		a.cfg, err = config.FindAndLoad(".")
	}
	if err != nil {
		return err
	}
	if level := a.v.GetString("log-level"); level != "" {
		a.cfg.Log.Level = level
	}
	if format := a.v.GetString("log-format"); format != "" {
		a.cfg.Log.Format = format
	}
	if a.v.GetBool("no-color") {
		a.cfg.Output.Color = false
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	if !a.cfg.Output.Color {
		color.NoColor = true
	}
	a.log = newLogger(a.stderr, a.cfg)
	a.log.Debug().Str("config", a.cfg.Path).Msg("configuration loaded")
	return nil
}
