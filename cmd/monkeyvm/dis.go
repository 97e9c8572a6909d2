package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Yag000/Interpreter-Monkey/bytecode"
	"github.com/Yag000/Interpreter-Monkey/dis"
	"github.com/Yag000/Interpreter-Monkey/op"
)

func (a *app) disCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dis <file>",
		Short: "Disassemble a bytecode file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.dis(args[0])
		},
	}
	flags := cmd.Flags()
	flags.String("func", "", "Disassemble only the named function")
	flags.Bool("all", false, "Also disassemble every function constant")
	a.bind(flags, "func", "all")
	return cmd
}

func (a *app) dis(path string) error {
	bc, err := bytecode.ReadFile(path)
	if err != nil {
		return err
	}
	if name := a.v.GetString("func"); name != "" {
		fn, ok := dis.FindFunction(bc, name)
		if !ok {
			return fmt.Errorf("function %q not found", name)
		}
		return a.printListing(fn.Instructions(), bc)
	}
	if err := a.printListing(bc.Instructions, bc); err != nil {
		return err
	}
	if !a.v.GetBool("all") {
		return nil
	}
	for _, fn := range dis.Functions(bc) {
		fmt.Fprintf(a.stdout, "\n%s:\n", fn.Inspect())
		if err := a.printListing(fn.Instructions(), bc); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) printListing(ins op.Instructions, bc *bytecode.Bytecode) error {
	instructions, err := dis.Disassemble(ins, bc.Constants)
	if err != nil {
		return err
	}
	dis.Print(instructions, a.stdout)
	return nil
}
