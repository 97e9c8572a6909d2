// Package vm provides a VirtualMachine that executes compiled Monkey
// bytecode.
package vm

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"

	"github.com/Yag000/Interpreter-Monkey/bytecode"
	"github.com/Yag000/Interpreter-Monkey/errz"
	"github.com/Yag000/Interpreter-Monkey/object"
	"github.com/Yag000/Interpreter-Monkey/op"
)

const (
	DefaultStackSize = 2048
	DefaultMaxFrames = 1024
	GlobalsSize      = 65536

	// DefaultContextCheckInterval is the number of instructions between
	// checks of ctx.Done(). Set to 0 to disable.
	DefaultContextCheckInterval = 1000
)

var (
	ErrAlreadyRunning = errors.New("vm is already running")
	ErrHalted         = errors.New("execution halted by observer")
)

type VirtualMachine struct {
	constants  []object.Object
	main       op.Instructions
	stack      []object.Object
	sp         int // next free stack slot; the top value is stack[sp-1]
	globals    []object.Object
	frames     []frame
	fp         int // number of active frames
	ip         int // offset of the instruction being executed
	lastPopped object.Object
	running    bool
	runMutex   sync.Mutex
	log        zerolog.Logger

	// contextCheckInterval is the number of instructions between checks
	// of ctx.Done(). A value of 0 disables checking.
	contextCheckInterval int

	// observer receives callbacks for VM execution events.
	// If nil, no callbacks are made.
	observer       Observer
	observerConfig ObserverConfig
	stepCount      int
}

// New creates a new Virtual Machine for the given program.
func New(bc *bytecode.Bytecode, options ...Option) *VirtualMachine {
	vm := &VirtualMachine{
		constants:            bc.Constants,
		main:                 bc.Instructions,
		stack:                make([]object.Object, DefaultStackSize),
		frames:               make([]frame, DefaultMaxFrames),
		log:                  zerolog.Nop(),
		contextCheckInterval: DefaultContextCheckInterval,
	}
	for _, opt := range options {
		opt(vm)
	}
	if vm.globals == nil {
		vm.globals = make([]object.Object, GlobalsSize)
	}
	return vm
}

func (vm *VirtualMachine) start() error {
	vm.runMutex.Lock()
	defer vm.runMutex.Unlock()
	if vm.running {
		return ErrAlreadyRunning
	}
	vm.running = true
	return nil
}

func (vm *VirtualMachine) stop() {
	vm.runMutex.Lock()
	defer vm.runMutex.Unlock()
	vm.running = false
}

// Run executes the program from its first instruction until the main
// stream is exhausted, a top level return executes, the context is done,
// or an error occurs. Globals survive between runs; the stack does not.
func (vm *VirtualMachine) Run(ctx context.Context) (err error) {
	// Set up some guarantees:
	// 1. It is an error to call Run on a VM that is already running
	// 2. The running flag will always be set to false when Run returns
	// 3. Any panics are translated to errors and the VM is stopped
	if err := vm.start(); err != nil {
		return err
	}
	runID := uuid.Must(uuid.NewV4()).String()
	log := vm.log.With().Str("run_id", runID).Logger()
	log.Debug().
		Int("instructions", len(vm.main)).
		Int("constants", len(vm.constants)).
		Msg("run started")
	defer func() {
		if r := recover(); r != nil {
			if serr, ok := r.(*errz.StructuredError); ok {
				err = vm.locate(serr)
			} else {
				err = vm.locate(errz.Errorf(errz.ErrRuntime, "panic: %v", r))
			}
		}
		log.Debug().Int("steps", vm.stepCount).Err(err).Msg("run finished")
		vm.stop()
	}()

	vm.reset()
	return vm.eval(ctx)
}

func (vm *VirtualMachine) reset() {
	for i := 0; i < vm.sp; i++ {
		vm.stack[i] = nil
	}
	vm.sp = 0
	vm.ip = 0
	vm.lastPopped = nil
	vm.stepCount = 0
	vm.frames[0] = frame{instructions: vm.main}
	vm.fp = 1
	if vm.observer != nil {
		vm.observerConfig = vm.observer.Config()
	}
}

func (vm *VirtualMachine) currentFrame() *frame {
	return &vm.frames[vm.fp-1]
}

func (vm *VirtualMachine) eval(ctx context.Context) error {
	var instructionCount int
	checkInterval := vm.contextCheckInterval
	doneChan := ctx.Done()

	for {
		fr := vm.currentFrame()
		if fr.done() {
			if vm.fp == 1 {
				return nil
			}
			// Falling off the end of a function body returns null.
			if err := vm.returnValue(object.Null); err != nil {
				return err
			}
			continue
		}

		if checkInterval > 0 && doneChan != nil {
			instructionCount++
			if instructionCount >= checkInterval {
				instructionCount = 0
				select {
				case <-doneChan:
					return ctx.Err()
				default:
				}
			}
		}

		vm.ip = fr.ip
		info, operands, err := fr.instructions.ReadAt(vm.ip)
		if errors.Is(err, op.ErrTruncated) {
			return vm.runtimeError(errz.ErrRuntime, "truncated %s instruction", info.Name)
		}
		if err != nil {
			return vm.runtimeError(errz.ErrRuntime, "unknown opcode %d", fr.instructions[vm.ip])
		}
		fr.ip += info.Width()
		vm.stepCount++

		if vm.observer != nil && vm.shouldObserveStep() {
			event := StepEvent{
				IP:         vm.ip,
				Opcode:     info.Code,
				OpcodeName: info.Name,
				StackDepth: vm.sp,
				FrameDepth: vm.fp,
			}
			if !vm.observer.OnStep(event) {
				return ErrHalted
			}
		}

		if err := vm.execute(info.Code, operands); err != nil {
			if errors.Is(err, errStop) {
				return nil
			}
			return err
		}
	}
}

// errStop signals a return from the top level frame.
var errStop = errors.New("stop")

func (vm *VirtualMachine) shouldObserveStep() bool {
	switch vm.observerConfig.StepMode {
	case StepAll:
		return true
	case StepSampled:
		interval := vm.observerConfig.SampleInterval
		if interval <= 0 {
			interval = 1
		}
		return vm.stepCount%interval == 0
	}
	return false
}

func (vm *VirtualMachine) execute(code op.Code, operands []int) error {
	switch code {
	case op.LoadConst:
		idx := operands[0]
		if idx >= len(vm.constants) {
			return vm.runtimeError(errz.ErrRuntime,
				"constant index %d out of range (%d constants)", idx, len(vm.constants))
		}
		vm.push(vm.constants[idx])
	case op.LoadGlobal:
		value := vm.globals[operands[0]]
		if value == nil {
			return vm.runtimeError(errz.ErrRuntime, "uninitialized global slot %d", operands[0])
		}
		vm.push(value)
	case op.StoreGlobal:
		vm.globals[operands[0]] = vm.pop()
	case op.Null:
		vm.push(object.Null)
	case op.True:
		vm.push(object.True)
	case op.False:
		vm.push(object.False)
	case op.Add, op.Sub, op.Mul, op.Div, op.And, op.Or:
		right := vm.pop()
		left := vm.pop()
		result, err := object.BinaryOp(code, left, right)
		if err != nil {
			return vm.locate(err)
		}
		vm.push(result)
	case op.Equal, op.NotEqual, op.GreaterThan, op.GreaterOrEqual:
		right := vm.pop()
		left := vm.pop()
		result, err := object.Compare(code, left, right)
		if err != nil {
			return vm.locate(err)
		}
		vm.push(result)
	case op.Not:
		result, err := object.Not(vm.pop())
		if err != nil {
			return vm.locate(err)
		}
		vm.push(result)
	case op.Negate:
		result, err := object.Negate(vm.pop())
		if err != nil {
			return vm.locate(err)
		}
		vm.push(result)
	case op.Jump:
		vm.currentFrame().ip = operands[0]
	case op.JumpIfNotTruthy:
		if !vm.pop().IsTruthy() {
			vm.currentFrame().ip = operands[0]
		}
	case op.BuildArray:
		count := operands[0]
		if count > vm.sp {
			return vm.runtimeError(errz.ErrStack, "stack underflow building array of %d", count)
		}
		items := make([]object.Object, count)
		copy(items, vm.stack[vm.sp-count:vm.sp])
		vm.drop(count)
		vm.push(object.NewArray(items))
	case op.BuildHash:
		count := operands[0]
		if count%2 != 0 {
			return vm.runtimeError(errz.ErrRuntime, "odd element count %d for hash", count)
		}
		if count > vm.sp {
			return vm.runtimeError(errz.ErrStack, "stack underflow building hash of %d", count)
		}
		hash := object.NewHashMap(count / 2)
		base := vm.sp - count
		for i := base; i < vm.sp; i += 2 {
			if err := hash.Set(vm.stack[i], vm.stack[i+1]); err != nil {
				return vm.locate(err)
			}
		}
		vm.drop(count)
		vm.push(hash)
	case op.Index:
		index := vm.pop()
		collection := vm.pop()
		result, err := object.GetIndex(collection, index)
		if err != nil {
			return vm.locate(err)
		}
		vm.push(result)
	case op.PopTop:
		vm.pop()
	case op.Call:
		return vm.call(vm.pop())
	case op.ReturnValue:
		fr := vm.currentFrame()
		if vm.sp <= fr.basePointer {
			return vm.runtimeError(errz.ErrStack, "stack underflow: return with empty stack")
		}
		value := vm.pop()
		if vm.fp == 1 {
			return errStop
		}
		return vm.returnValue(value)
	default:
		return vm.runtimeError(errz.ErrRuntime, "unhandled opcode %s", code)
	}
	return nil
}

func (vm *VirtualMachine) call(callee object.Object) error {
	fn, ok := callee.(*object.Function)
	if !ok {
		return vm.runtimeError(errz.ErrType, "not callable: %s", callee.Type())
	}
	if vm.fp >= len(vm.frames) {
		return vm.runtimeError(errz.ErrStack, "call stack overflow (max depth %d)", len(vm.frames))
	}
	callSite := vm.ip
	vm.frames[vm.fp] = frame{
		fn:           fn,
		instructions: fn.Instructions(),
		basePointer:  vm.sp,
	}
	vm.fp++
	if vm.observer != nil && vm.observerConfig.ObserveCalls {
		event := CallEvent{
			FunctionName: fn.Name(),
			CallSiteIP:   callSite,
			FrameDepth:   vm.fp,
		}
		if !vm.observer.OnCall(event) {
			return ErrHalted
		}
	}
	return nil
}

func (vm *VirtualMachine) returnValue(value object.Object) error {
	fr := vm.currentFrame()
	name := fr.name()
	vm.drop(vm.sp - fr.basePointer)
	vm.frames[vm.fp-1] = frame{}
	vm.fp--
	vm.push(value)
	if vm.observer != nil && vm.observerConfig.ObserveReturns {
		event := ReturnEvent{
			FunctionName: name,
			Value:        value,
			FrameDepth:   vm.fp,
		}
		if !vm.observer.OnReturn(event) {
			return ErrHalted
		}
	}
	return nil
}

func (vm *VirtualMachine) pop() object.Object {
	if vm.sp <= 0 {
		panic(errz.New(errz.ErrStack, "stack underflow"))
	}
	vm.sp--
	obj := vm.stack[vm.sp]
	vm.stack[vm.sp] = nil
	vm.lastPopped = obj
	return obj
}

func (vm *VirtualMachine) push(obj object.Object) {
	if vm.sp >= len(vm.stack) {
		panic(errz.Errorf(errz.ErrStack, "stack overflow (max size %d)", len(vm.stack)))
	}
	vm.stack[vm.sp] = obj
	vm.sp++
}

// drop discards the top n stack values without recording them.
func (vm *VirtualMachine) drop(n int) {
	for i := 0; i < n; i++ {
		vm.sp--
		vm.stack[vm.sp] = nil
	}
}

// LastPopped returns the value most recently removed from the stack. This
// is the result of the last expression statement, or the value of a top
// level return. It is nil before any value has been popped.
func (vm *VirtualMachine) LastPopped() object.Object {
	return vm.lastPopped
}

// StackTop returns the value on top of the stack, if any.
func (vm *VirtualMachine) StackTop() (object.Object, bool) {
	if vm.sp == 0 {
		return nil, false
	}
	return vm.stack[vm.sp-1], true
}

// Global returns the value stored in global slot i, or nil when unset.
func (vm *VirtualMachine) Global(i int) object.Object {
	if i < 0 || i >= len(vm.globals) {
		return nil
	}
	return vm.globals[i]
}

// Globals returns the global slots. Pass them to WithGlobals to carry
// bindings into another VM.
func (vm *VirtualMachine) Globals() []object.Object {
	return vm.globals
}

// captureStack builds a stack trace from the active call frames,
// innermost first.
func (vm *VirtualMachine) captureStack() []errz.StackFrame {
	frames := make([]errz.StackFrame, 0, vm.fp)
	for i := vm.fp - 1; i >= 0; i-- {
		fr := &vm.frames[i]
		ip := vm.ip
		if i != vm.fp-1 {
			// The caller's ip already points past its CALL instruction.
			ip = fr.ip - 1
		}
		frames = append(frames, errz.StackFrame{Function: fr.name(), IP: ip})
	}
	return frames
}

// locate attaches the current ip and call stack to err.
func (vm *VirtualMachine) locate(err error) *errz.StructuredError {
	var serr *errz.StructuredError
	if !errors.As(err, &serr) {
		serr = errz.New(errz.ErrRuntime, err.Error()).WithCause(err)
	}
	return serr.WithStack(vm.ip, vm.captureStack())
}

// runtimeError creates a StructuredError with the current ip and stack.
func (vm *VirtualMachine) runtimeError(kind errz.ErrorKind, format string, args ...any) *errz.StructuredError {
	return vm.locate(errz.New(kind, fmt.Sprintf(format, args...)))
}
