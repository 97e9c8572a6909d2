package vm

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	. "github.com/Yag000/Interpreter-Monkey/internal/asttest"
	"github.com/Yag000/Interpreter-Monkey/object"
	"github.com/Yag000/Interpreter-Monkey/op"
)

type recordingObserver struct {
	NoOpObserver
	config  ObserverConfig
	steps   []StepEvent
	calls   []CallEvent
	returns []ReturnEvent
	haltAt  int // halt on this step number when > 0
}

func (o *recordingObserver) Config() ObserverConfig {
	return o.config
}

func (o *recordingObserver) OnStep(e StepEvent) bool {
	o.steps = append(o.steps, e)
	return o.haltAt == 0 || len(o.steps) < o.haltAt
}

func (o *recordingObserver) OnCall(e CallEvent) bool {
	o.calls = append(o.calls, e)
	return true
}

func (o *recordingObserver) OnReturn(e ReturnEvent) bool {
	o.returns = append(o.returns, e)
	return true
}

func TestObserverSteps(t *testing.T) {
	obs := &recordingObserver{config: NewObserverConfig(StepAll)}
	_, err := run(t, Exprs(Infix(Int(1), "+", Int(2))), WithObserver(obs))
	require.Nil(t, err)
	require.Len(t, obs.steps, 4)
	require.Equal(t, StepEvent{IP: 0, Opcode: op.LoadConst, OpcodeName: "LOAD_CONST", StackDepth: 0, FrameDepth: 1}, obs.steps[0])
	require.Equal(t, StepEvent{IP: 3, Opcode: op.LoadConst, OpcodeName: "LOAD_CONST", StackDepth: 1, FrameDepth: 1}, obs.steps[1])
	require.Equal(t, StepEvent{IP: 6, Opcode: op.Add, OpcodeName: "ADD", StackDepth: 2, FrameDepth: 1}, obs.steps[2])
	require.Equal(t, StepEvent{IP: 7, Opcode: op.PopTop, OpcodeName: "POP_TOP", StackDepth: 1, FrameDepth: 1}, obs.steps[3])
}

func TestObserverCallsAndReturns(t *testing.T) {
	obs := &recordingObserver{config: NewObserverConfig(StepNone)}
	program := Program(
		Let("f", Fn(Expr(Int(5)))),
		Expr(Call(Ident("f"))),
		Expr(Call(Fn())),
	)
	_, err := run(t, program, WithObserver(obs))
	require.Nil(t, err)
	require.Empty(t, obs.steps)
	require.Len(t, obs.calls, 2)
	require.Equal(t, "f", obs.calls[0].FunctionName)
	require.Equal(t, 2, obs.calls[0].FrameDepth)
	require.Equal(t, "", obs.calls[1].FunctionName)

	require.Len(t, obs.returns, 2)
	require.Equal(t, "f", obs.returns[0].FunctionName)
	require.Equal(t, object.NewInt(5), obs.returns[0].Value)
	require.Equal(t, 1, obs.returns[0].FrameDepth)
	// Falling off the end of an empty body returns null.
	require.Equal(t, object.Null, obs.returns[1].Value)
}

func TestObserverSampledSteps(t *testing.T) {
	obs := &recordingObserver{config: ObserverConfig{StepMode: StepSampled, SampleInterval: 2}}
	_, err := run(t, Exprs(Int(1), Int(2), Int(3)), WithObserver(obs))
	require.Nil(t, err)
	// Six instructions, every second one observed.
	require.Len(t, obs.steps, 3)
	require.Empty(t, obs.calls)
}

func TestObserverHalts(t *testing.T) {
	obs := &recordingObserver{config: NewObserverConfig(StepAll), haltAt: 3}
	machine := New(compile(t, Exprs(Int(1), Int(2))), WithObserver(obs))
	err := machine.Run(context.Background())
	require.ErrorIs(t, err, ErrHalted)
	require.Len(t, obs.steps, 3)
	require.Equal(t, object.NewInt(1), machine.LastPopped())
}

func TestLogObserver(t *testing.T) {
	// Trace events are below zerolog's default global level.
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.TraceLevel)
	program := Program(Let("f", Fn(Expr(Int(5)))), Expr(Call(Ident("f"))))
	_, err := run(t, program, WithObserver(NewLogObserver(logger)))
	require.Nil(t, err)
	out := buf.String()
	require.Contains(t, out, `"op":"LOAD_CONST"`)
	require.Contains(t, out, `"message":"call"`)
	require.Contains(t, out, `"function":"f"`)
	require.Contains(t, out, `"value":"5"`)
}
