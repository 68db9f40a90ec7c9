// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package filepos provides the concept of Position: a source name (usually a
file), plus a line and column within that source.

Positions are attached to parsed template constructs so that parse and
evaluation errors can point back at the offending spot in the source text.
*/
package filepos
