package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/Yag000/Interpreter-Monkey/bytecode"
	"github.com/Yag000/Interpreter-Monkey/errz"
)

var red = color.New(color.FgRed).SprintFunc()

func fatal(w io.Writer, err error) {
	var serr *errz.StructuredError
	if errors.As(err, &serr) {
		fmt.Fprint(w, serr.FriendlyErrorMessage())
	} else {
		fmt.Fprintf(w, "%s\n", red(err.Error()))
	}
	os.Exit(1)
}

// loadBytecode reads a bytecode file and checks it before use.
func loadBytecode(path string) (*bytecode.Bytecode, error) {
	bc, err := bytecode.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := bytecode.Validate(bc); err != nil {
		return nil, fmt.Errorf("invalid bytecode in %s: %w", path, err)
	}
	return bc, nil
}
