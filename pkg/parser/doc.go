// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package parser turns template source into an executable tree. It scans
source into text, output (`{{ ... }}`) and tag (`{% ... %}`) elements,
tokenizes tag contents, and drives a recursive-descent parse that consults
a Language registry for tag, block and filter plugins.

The parser itself knows nothing about concrete constructs: plugins receive
token-stream combinators for their arguments (and a recursive body parser
for blocks) and return Renderables. New grammar constructs are added by
registering plugins, never by touching this package.
*/
package parser
