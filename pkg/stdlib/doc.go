// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package stdlib provides the built-in tags, blocks and filters, and
DefaultLanguage which registers all of them into a parser.Language.

Each construct here is an ordinary plugin going through the same extension
framework external constructs would; nothing in the parser special-cases
them.
*/
package stdlib
