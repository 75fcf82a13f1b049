// Package toolkit groups ready-made tools for demos and the CLI.
//
// Subpackages expose constructors returning tools that can be added to an
// agent directly or registered in a tool.Registry and referenced by name from
// an agents file (see Register).
package toolkit
