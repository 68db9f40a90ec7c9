// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package values provides the dynamic value model templates operate on: a
tagged union of nil, scalars (bool, integer, float, string, date), arrays
and insertion-ordered objects.

Every value supports the same narrow capability surface (classification,
scalar projection, display rendering, structural equality and child lookup)
so the rest of the engine never switches on concrete kinds directly.

Values are immutable once constructed; evaluation never mutates an array or
object in place through a shared reference.
*/
package values
