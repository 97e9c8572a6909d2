package vm

import (
	"github.com/rs/zerolog"

	"github.com/Yag000/Interpreter-Monkey/object"
	"github.com/Yag000/Interpreter-Monkey/op"
)

// StepMode controls when OnStep callbacks are triggered.
type StepMode uint8

const (
	// StepAll calls OnStep for every instruction.
	StepAll StepMode = iota

	// StepNone never calls OnStep.
	StepNone

	// StepSampled calls OnStep every N instructions.
	StepSampled
)

// ObserverConfig specifies what events an observer wants to receive.
// Use NewObserverConfig() to create configs with safe defaults.
type ObserverConfig struct {
	// StepMode controls OnStep callback frequency.
	StepMode StepMode

	// SampleInterval is the number of instructions between OnStep calls
	// when StepMode is StepSampled. Values <= 0 are treated as 1.
	SampleInterval int

	// ObserveCalls enables OnCall callbacks.
	ObserveCalls bool

	// ObserveReturns enables OnReturn callbacks.
	ObserveReturns bool
}

// NewObserverConfig creates a config with calls and returns observed.
func NewObserverConfig(mode StepMode) ObserverConfig {
	return ObserverConfig{
		StepMode:       mode,
		SampleInterval: 1000,
		ObserveCalls:   true,
		ObserveReturns: true,
	}
}

// Observer is an interface for observing VM execution events, e.g. for
// tracing or profiling.
//
// Implementations can embed NoOpObserver to provide default no-op
// implementations for methods they don't need.
type Observer interface {
	// Config returns the observer's configuration.
	// Called once when a run starts.
	Config() ObserverConfig

	// OnStep is called before an instruction executes.
	// Returns false to halt execution immediately.
	OnStep(event StepEvent) bool

	// OnCall is called after a new frame is pushed.
	// Returns false to halt execution immediately.
	OnCall(event CallEvent) bool

	// OnReturn is called after a frame is popped.
	// Returns false to halt execution immediately.
	OnReturn(event ReturnEvent) bool
}

// StepEvent contains information about a single instruction step.
type StepEvent struct {
	// IP is the offset of the instruction in its stream.
	IP int

	// Opcode is the operation being executed.
	Opcode op.Code

	// OpcodeName is the human-readable name of the opcode.
	OpcodeName string

	// StackDepth is the current depth of the value stack.
	StackDepth int

	// FrameDepth is the current depth of the call stack.
	FrameDepth int
}

// CallEvent contains information about a function call.
type CallEvent struct {
	// FunctionName is the name of the function being called.
	// Anonymous functions will have an empty name.
	FunctionName string

	// CallSiteIP is the offset of the CALL instruction in the caller.
	CallSiteIP int

	// FrameDepth is the call stack depth after the call.
	FrameDepth int
}

// ReturnEvent contains information about a function return.
type ReturnEvent struct {
	// FunctionName is the name of the function returning.
	FunctionName string

	// Value is the returned value.
	Value object.Object

	// FrameDepth is the call stack depth after returning.
	FrameDepth int
}

// NoOpObserver is an Observer implementation that does nothing.
// Embed this in your observer to provide default implementations
// for methods you don't need.
type NoOpObserver struct{}

func (NoOpObserver) Config() ObserverConfig {
	return NewObserverConfig(StepAll)
}

func (NoOpObserver) OnStep(StepEvent) bool     { return true }
func (NoOpObserver) OnCall(CallEvent) bool     { return true }
func (NoOpObserver) OnReturn(ReturnEvent) bool { return true }

// Ensure NoOpObserver implements Observer.
var _ Observer = NoOpObserver{}

// LogObserver writes one trace level event per step, call and return.
type LogObserver struct {
	log    zerolog.Logger
	config ObserverConfig
}

// NewLogObserver returns an observer that traces every instruction to
// logger.
func NewLogObserver(logger zerolog.Logger) *LogObserver {
	return &LogObserver{log: logger, config: NewObserverConfig(StepAll)}
}

func (o *LogObserver) Config() ObserverConfig {
	return o.config
}

func (o *LogObserver) OnStep(e StepEvent) bool {
	o.log.Trace().
		Int("ip", e.IP).
		Str("op", e.OpcodeName).
		Int("stack", e.StackDepth).
		Int("frames", e.FrameDepth).
		Msg("step")
	return true
}

func (o *LogObserver) OnCall(e CallEvent) bool {
	o.log.Trace().
		Str("function", e.FunctionName).
		Int("call_site", e.CallSiteIP).
		Int("frames", e.FrameDepth).
		Msg("call")
	return true
}

func (o *LogObserver) OnReturn(e ReturnEvent) bool {
	ev := o.log.Trace().
		Str("function", e.FunctionName).
		Int("frames", e.FrameDepth)
	if e.Value != nil {
		ev = ev.Str("value", e.Value.Inspect())
	}
	ev.Msg("return")
	return true
}

var _ Observer = (*LogObserver)(nil)
