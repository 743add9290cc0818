// Package vm implements the stack machine that executes flare bytecode.
package vm

import (
	"fmt"
	"strings"

	"flare/internal/bytecode"
	"flare/internal/debug"
	"flare/internal/value"
)

// StackMax is the fixed operand stack capacity.
const StackMax = 256

// Options configures VM execution.
type Options struct {
	Trace bool // print each instruction and the stack to stderr
}

// VM is a bytecode interpreter with a fixed-size operand stack. It owns the
// object registry and global table for its whole lifetime, so interned
// strings and globals survive across interpret calls (a REPL requirement).
// The chunk is borrowed read-only for the duration of one Run.
type VM struct {
	stack    [StackMax]value.Value
	stackTop int

	chunk *bytecode.Chunk
	ip    int

	objects *value.Registry
	globals value.Table

	rt   *Runtime
	opts Options
}

// New creates a VM with a fresh object registry.
func New(rt *Runtime, opts Options) *VM {
	return &VM{
		objects: value.NewRegistry(),
		rt:      rt,
		opts:    opts,
	}
}

// Objects returns the registry shared with the compiler.
func (vm *VM) Objects() *value.Registry {
	return vm.objects
}

// SetRuntime swaps the runtime streams; used by the REPL and tests.
func (vm *VM) SetRuntime(rt *Runtime) {
	vm.rt = rt
}

// GlobalByName resolves a global by identifier content. Misses when the name
// was never interned or never defined.
func (vm *VM) GlobalByName(name string) (value.Value, bool) {
	key := vm.objects.Strings().FindString(name, value.HashString(name))
	if key == nil {
		return value.Nil(), false
	}
	return vm.globals.Get(key)
}

// Free tears down every heap object and both tables. The VM remains usable.
func (vm *VM) Free() {
	vm.globals.Reset()
	vm.objects.FreeAll()
	vm.resetStack()
}

func (vm *VM) resetStack() {
	vm.stackTop = 0
}

func (vm *VM) push(v value.Value) {
	vm.stack[vm.stackTop] = v
	vm.stackTop++
}

func (vm *VM) pop() value.Value {
	vm.stackTop--
	return vm.stack[vm.stackTop]
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[vm.stackTop-1-distance]
}

// runtimeError reports a fatal fault with the source line of the current
// instruction, then resets the stack.
func (vm *VM) runtimeError(format string, args ...any) {
	fmt.Fprintf(vm.rt.Stderr, format, args...)
	fmt.Fprintln(vm.rt.Stderr)
	fmt.Fprintf(vm.rt.Stderr, "[line %d] in script\n", vm.chunk.GetLine(vm.ip-1))
	vm.resetStack()
}

func (vm *VM) readByte() byte {
	b := vm.chunk.Read(vm.ip)
	vm.ip++
	return b
}

func (vm *VM) readConstant() value.Value {
	return vm.chunk.Constants.At(int(vm.readByte()))
}

// Run executes the chunk from its first byte until OP_RETURN or a runtime
// error.
func (vm *VM) Run(chunk *bytecode.Chunk) Result {
	vm.chunk = chunk
	vm.ip = 0
	defer func() {
		vm.chunk = nil
	}()

	for vm.ip < chunk.Len() {
		if vm.opts.Trace {
			vm.traceInstruction()
		}

		op := bytecode.OpCode(vm.readByte())
		switch op {
		case bytecode.OpConstant:
			vm.push(vm.readConstant())

		case bytecode.OpNil:
			vm.push(value.Nil())
		case bytecode.OpTrue:
			vm.push(value.Boolean(true))
		case bytecode.OpFalse:
			vm.push(value.Boolean(false))

		case bytecode.OpPop:
			vm.pop()

		case bytecode.OpDefineGlobal:
			name := vm.readConstant().AsString()
			vm.globals.Set(name, vm.peek(0))
			vm.pop()

		case bytecode.OpEqual:
			b := vm.pop()
			a := vm.pop()
			vm.push(value.Boolean(a.Equal(b)))

		case bytecode.OpGreater:
			if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
				vm.runtimeError("Operands must be numbers.")
				return ResultRuntimeError
			}
			b := vm.pop()
			a := vm.pop()
			vm.push(value.Boolean(a.Num > b.Num))

		case bytecode.OpLess:
			if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
				vm.runtimeError("Operands must be numbers.")
				return ResultRuntimeError
			}
			b := vm.pop()
			a := vm.pop()
			vm.push(value.Boolean(a.Num < b.Num))

		case bytecode.OpAdd:
			switch {
			case vm.peek(0).IsString() && vm.peek(1).IsString():
				vm.concatenate()
			case vm.peek(0).IsNumber() && vm.peek(1).IsNumber():
				b := vm.pop()
				a := vm.pop()
				vm.push(value.Number(a.Num + b.Num))
			default:
				vm.runtimeError("Operands must be two numbers or two strings.")
				return ResultRuntimeError
			}

		case bytecode.OpSubtract:
			if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
				vm.runtimeError("Operands must be numbers.")
				return ResultRuntimeError
			}
			b := vm.pop()
			a := vm.pop()
			vm.push(value.Number(a.Num - b.Num))

		case bytecode.OpMultiply:
			if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
				vm.runtimeError("Operands must be numbers.")
				return ResultRuntimeError
			}
			b := vm.pop()
			a := vm.pop()
			vm.push(value.Number(a.Num * b.Num))

		case bytecode.OpDivide:
			if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
				vm.runtimeError("Operands must be numbers.")
				return ResultRuntimeError
			}
			b := vm.pop()
			a := vm.pop()
			vm.push(value.Number(a.Num / b.Num))

		case bytecode.OpNot:
			vm.push(value.Boolean(vm.pop().IsFalsey()))

		case bytecode.OpNegate:
			if !vm.peek(0).IsNumber() {
				vm.runtimeError("Operand must be a number.")
				return ResultRuntimeError
			}
			vm.push(value.Number(-vm.pop().Num))

		case bytecode.OpPrint:
			fmt.Fprintln(vm.rt.Stdout, vm.pop())

		case bytecode.OpReturn:
			return ResultOK

		default:
			// неизвестный байт пропускаем, сохраняя прогресс
		}
	}
	return ResultOK
}

// concatenate pops two strings, joins their bytes, and pushes the interned
// result. TakeString may discard the fresh buffer when the result already
// exists.
func (vm *VM) concatenate() {
	b := vm.pop().AsString()
	a := vm.pop().AsString()

	var sb strings.Builder
	sb.Grow(a.Len() + b.Len())
	sb.WriteString(a.Str)
	sb.WriteString(b.Str)

	vm.push(vm.objects.TakeString(sb.String()))
}

// traceInstruction prints the operand stack and the next instruction.
func (vm *VM) traceInstruction() {
	fmt.Fprint(vm.rt.Stderr, "          ")
	for i := 0; i < vm.stackTop; i++ {
		fmt.Fprintf(vm.rt.Stderr, "[ %s ]", vm.stack[i])
	}
	fmt.Fprintln(vm.rt.Stderr)
	debug.DisassembleInstruction(vm.rt.Stderr, vm.chunk, vm.ip)
}
