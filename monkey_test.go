package monkey

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Yag000/Interpreter-Monkey/ast"
	cerrors "github.com/Yag000/Interpreter-Monkey/errors"
	"github.com/Yag000/Interpreter-Monkey/errz"
	. "github.com/Yag000/Interpreter-Monkey/internal/asttest"
	"github.com/Yag000/Interpreter-Monkey/object"
	"github.com/Yag000/Interpreter-Monkey/token"
	"github.com/Yag000/Interpreter-Monkey/vm"
)

func TestBasicUsage(t *testing.T) {
	result, err := Eval(context.Background(), Exprs(Infix(Int(1), "+", Int(1))))
	require.Nil(t, err)
	require.Equal(t, int64(2), result)
}

func TestEvalGoValues(t *testing.T) {
	tests := []struct {
		name     string
		input    *ast.Program
		expected any
	}{
		{"string", Exprs(Str("a")), "a"},
		{"bool", Exprs(Bool(true)), true},
		{"null", Exprs(If(Bool(false), Block(Expr(Int(1))), nil)), nil},
		{"array", Exprs(Array(Int(1), Str("b"))), []any{int64(1), "b"}},
		{"hash", Exprs(Hash(Str("k"), Int(2))), map[any]any{"k": int64(2)}},
		{"named function", Program(Let("f", Fn()), Expr(Ident("f"))), "function f"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Eval(context.Background(), tt.input)
			require.Nil(t, err)
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestCompileOnceRunConcurrently(t *testing.T) {
	bc, err := Compile(Program(
		Let("f", Fn(Expr(Infix(Int(6), "*", Int(7))))),
		Expr(Call(Ident("f"))),
	))
	require.Nil(t, err)

	var wg sync.WaitGroup
	results := make([]any, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = Run(context.Background(), bc)
		}(i)
	}
	wg.Wait()
	for i := range results {
		require.Nil(t, errs[i])
		require.Equal(t, int64(42), results[i])
	}
}

func TestCompileErrorLocation(t *testing.T) {
	ident := Ident("count")
	ident.NamePos = token.Position{Line: 1, Column: 4}
	program := Program(Let("counter", Int(1)), Expr(ident))

	_, err := Eval(context.Background(), program,
		WithFilename("main.mk"),
		WithSource("let counter = 1;\nx + count"))
	var cerr *cerrors.CompileError
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, cerrors.E2001, cerr.Code)
	require.Equal(t, "main.mk", cerr.Filename)
	require.Equal(t, 2, cerr.Line)
	require.Equal(t, "x + count", cerr.SourceLine)
	require.Equal(t, []string{"counter"}, cerr.Suggestions)
}

func TestRuntimeError(t *testing.T) {
	_, err := Eval(context.Background(), Exprs(Infix(Int(1), "/", Int(0))))
	var serr *errz.StructuredError
	require.True(t, errors.As(err, &serr))
	require.Equal(t, errz.ErrValue, serr.Kind)
}

func TestOptionsReachTheVM(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	obs := &countingObserver{}
	_, err := Eval(context.Background(), Exprs(Int(1)),
		WithLogger(logger),
		WithObserver(obs),
		WithVMOptions(vm.WithStackSize(4)))
	require.Nil(t, err)
	require.Equal(t, 2, obs.steps)
	require.Contains(t, buf.String(), "compiled program")
	require.Contains(t, buf.String(), "run finished")

	_, err = Eval(context.Background(), Exprs(Array(Int(1), Int(2))),
		WithVMOptions(vm.WithStackSize(1)))
	var serr *errz.StructuredError
	require.True(t, errors.As(err, &serr))
	require.Equal(t, errz.ErrStack, serr.Kind)
}

type countingObserver struct {
	vm.NoOpObserver
	steps int
}

func (o *countingObserver) OnStep(vm.StepEvent) bool {
	o.steps++
	return true
}

func TestSession(t *testing.T) {
	ctx := context.Background()
	s := NewSession()

	result, err := s.Eval(ctx, Program(
		Let("x", Int(10)),
		Let("f", Fn(Expr(Infix(Ident("x"), "*", Int(2))))),
		Expr(Ident("x")),
	))
	require.Nil(t, err)
	require.Equal(t, object.NewInt(10), result)

	result, err = s.Eval(ctx, Exprs(Call(Ident("f"))))
	require.Nil(t, err)
	require.Equal(t, object.NewInt(20), result)

	// A failed input keeps earlier bindings.
	_, err = s.Eval(ctx, Exprs(Ident("missing")))
	require.NotNil(t, err)

	result, err = s.Eval(ctx, Program(Let("x", Int(1)), Expr(Call(Ident("f")))))
	require.Nil(t, err)
	require.Equal(t, object.NewInt(20), result, "f still reads the slot it was compiled against")

	require.Equal(t, []string{"f", "x"}, s.Names())
	x, ok := s.Get("x")
	require.True(t, ok)
	require.Equal(t, object.NewInt(1), x)
	_, ok = s.Get("missing")
	require.False(t, ok)
}
