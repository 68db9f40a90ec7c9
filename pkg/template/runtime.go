// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"carvel.dev/fluid/pkg/values"
)

// Interrupt is the tri-state signal control-flow-ending constructs set to
// stop sibling rendering. Setting it does not unwind anything: every
// sequence executor checks it cooperatively, and only the construct that
// owns loop semantics clears it.
type Interrupt int

const (
	InterruptNone Interrupt = iota
	InterruptBreak
	InterruptContinue
)

// Runtime is the mutable execution context of a single render pass. It is
// created fresh per pass, never shared across concurrent passes, and
// discarded when the pass ends.
type Runtime struct {
	frames    []map[string]values.Value
	registers map[interface{}]interface{}
	interrupt Interrupt
}

func NewRuntime(globals *values.Object) *Runtime {
	frame := map[string]values.Value{}
	if globals != nil {
		globals.Iterate(func(k string, v values.Value) {
			frame[k] = v
		})
	}
	return &Runtime{
		frames:    []map[string]values.Value{frame},
		registers: map[interface{}]interface{}{},
	}
}

// Get resolves a variable by scanning frames innermost to outermost,
// returning nil (the value) when unmatched.
func (r *Runtime) Get(name string) values.Value {
	for i := len(r.frames) - 1; i >= 0; i-- {
		if val, found := r.frames[i][name]; found {
			return val
		}
	}
	return values.NewNil()
}

// SetLocal writes into the current innermost frame.
func (r *Runtime) SetLocal(name string, val values.Value) {
	r.frames[len(r.frames)-1][name] = val
}

// SetGlobal always writes into the outermost frame, regardless of current
// nesting depth. This is what makes an assignment performed inside a loop
// body visible after the loop ends.
func (r *Runtime) SetGlobal(name string, val values.Value) {
	r.frames[0][name] = val
}

func (r *Runtime) PushFrame() {
	r.frames = append(r.frames, map[string]values.Value{})
}

func (r *Runtime) PopFrame() {
	if len(r.frames) == 1 {
		panic("cannot pop the global frame")
	}
	r.frames = r.frames[:len(r.frames)-1]
}

// Register returns state a block persisted earlier in this render pass.
// Keys are chosen by block implementations; keying by the block's own
// node pointer gives one slot per lexical occurrence.
func (r *Runtime) Register(key interface{}) (interface{}, bool) {
	val, found := r.registers[key]
	return val, found
}

func (r *Runtime) SetRegister(key, val interface{}) {
	r.registers[key] = val
}

func (r *Runtime) Interrupt() Interrupt { return r.interrupt }

func (r *Runtime) SetInterrupt(i Interrupt) { r.interrupt = i }

func (r *Runtime) ClearInterrupt() { r.interrupt = InterruptNone }
