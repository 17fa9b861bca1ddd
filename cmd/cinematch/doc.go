// Package main hosts the cinematch CLI entrypoint and command graph.
//
// Commands load configuration lazily through a shared commandContext, open
// the catalog and similarity artifacts once per invocation, and render
// results as tables, plain lines, or JSON. Resolution, ranking and poster
// lookups live in the internal packages; this package only maps flags onto
// requests and results onto the terminal.
package main
