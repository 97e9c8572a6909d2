package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check bytecode files for structural problems",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				bc, err := loadBytecode(path)
				if err != nil {
					return err
				}
				a.log.Debug().Str("file", path).Msg("validated")
				fmt.Fprintf(a.stdout, "%s: ok (%d bytes of instructions, %d constants)\n",
					path, len(bc.Instructions), len(bc.Constants))
			}
			return nil
		},
	}
}
