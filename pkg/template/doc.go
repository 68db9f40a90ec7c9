// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package template provides the executable core of the engine: the Renderable
contract every compiled node satisfies, the Template sequence combinator
used both as the document root and as every block's body, the per-render
Runtime (variable scope stack, per-block registers, interrupt signal), and
the expression/filter-chain evaluator.

A compiled Template is immutable and may be rendered any number of times,
concurrently included, as long as each render pass gets its own Runtime.
*/
package template
