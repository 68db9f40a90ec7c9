// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"strings"
)

type annotation struct {
	key   string
	value string
}

// EvalError reports a filter or tag rejecting its input or arguments.
// Annotations accumulate outward from the failure point as the error
// propagates, each recording a "key: value" fact such as the offending
// filter's source form and the rendered value fed into it.
type EvalError struct {
	msg         string
	annotations []annotation
}

var _ error = &EvalError{}

func NewEvalError(msg string) *EvalError {
	return &EvalError{msg: msg}
}

func NewEvalErrorf(format string, args ...interface{}) *EvalError {
	return &EvalError{msg: fmt.Sprintf(format, args...)}
}

func (e *EvalError) Error() string {
	return e.msg + formatAnnotations(e.annotations)
}

// RenderError reports the output sink rejecting a write.
type RenderError struct {
	msg         string
	cause       error
	annotations []annotation
}

var _ error = &RenderError{}

func NewRenderError(msg string, cause error) *RenderError {
	return &RenderError{msg: msg, cause: cause}
}

func (e *RenderError) Error() string {
	msg := e.msg
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg + formatAnnotations(e.annotations)
}

func (e *RenderError) Unwrap() error { return e.cause }

// Trace appends a "key: value" annotation to an evaluation or render
// error; plain errors are promoted to EvalError first.
func Trace(err error, key, value string) error {
	switch typedErr := err.(type) {
	case *EvalError:
		typedErr.annotations = append(typedErr.annotations, annotation{key, value})
		return typedErr
	case *RenderError:
		typedErr.annotations = append(typedErr.annotations, annotation{key, value})
		return typedErr
	default:
		wrapped := NewEvalError(err.Error())
		wrapped.annotations = append(wrapped.annotations, annotation{key, value})
		return wrapped
	}
}

func formatAnnotations(anns []annotation) string {
	if len(anns) == 0 {
		return ""
	}
	result := []string{""}
	for _, ann := range anns {
		result = append(result, fmt.Sprintf("  %s: %s", ann.key, ann.value))
	}
	return strings.Join(result, "\n")
}
