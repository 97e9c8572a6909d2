// Package monkey compiles Monkey syntax trees to bytecode and runs them on
// the virtual machine.
package monkey

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Yag000/Interpreter-Monkey/ast"
	"github.com/Yag000/Interpreter-Monkey/bytecode"
	"github.com/Yag000/Interpreter-Monkey/compiler"
	"github.com/Yag000/Interpreter-Monkey/object"
	"github.com/Yag000/Interpreter-Monkey/vm"
)

// Option configures a compilation or execution.
type Option func(*options)

type options struct {
	filename string
	source   string
	logger   *zerolog.Logger
	observer vm.Observer
	vmOpts   []vm.Option
}

func collectOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) compilerConfig() *compiler.Config {
	return &compiler.Config{
		Filename: o.filename,
		Source:   o.source,
		Logger:   o.logger,
	}
}

func (o *options) vmOptions() []vm.Option {
	var opts []vm.Option
	if o.logger != nil {
		opts = append(opts, vm.WithLogger(*o.logger))
	}
	if o.observer != nil {
		opts = append(opts, vm.WithObserver(o.observer))
	}
	return append(opts, o.vmOpts...)
}

// WithFilename sets the filename reported in compile errors.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithSource provides the source text the program was parsed from, so
// compile errors can quote the offending line.
func WithSource(source string) Option {
	return func(o *options) {
		o.source = source
	}
}

// WithLogger sends compiler and VM debug logs to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// WithObserver sets an observer for VM execution events.
// The observer receives callbacks for instruction steps, function calls,
// and function returns.
func WithObserver(observer vm.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithVMOptions passes additional options to the virtual machine.
func WithVMOptions(opts ...vm.Option) Option {
	return func(o *options) {
		o.vmOpts = append(o.vmOpts, opts...)
	}
}

// Compile compiles a syntax tree into executable bytecode.
// The returned Bytecode is not modified by Run, so multiple goroutines
// can execute it simultaneously.
func Compile(program *ast.Program, opts ...Option) (*bytecode.Bytecode, error) {
	return compiler.Compile(program, collectOptions(opts...).compilerConfig())
}

// Run executes compiled bytecode and returns the result as a native Go
// value. Each call creates fresh runtime state.
func Run(ctx context.Context, bc *bytecode.Bytecode, opts ...Option) (any, error) {
	result, err := vm.Run(ctx, bc, collectOptions(opts...).vmOptions()...)
	if err != nil {
		return nil, err
	}
	return toGo(result), nil
}

// Eval is a convenience function that compiles and runs a syntax tree.
// It is equivalent to Compile() followed by Run().
func Eval(ctx context.Context, program *ast.Program, opts ...Option) (any, error) {
	bc, err := Compile(program, opts...)
	if err != nil {
		return nil, err
	}
	return Run(ctx, bc, opts...)
}

// toGo converts a result to a Go value. Functions have no Go equivalent
// and are returned as their string representation.
func toGo(obj object.Object) any {
	if fn, ok := obj.(*object.Function); ok {
		return fn.Inspect()
	}
	return obj.Interface()
}
