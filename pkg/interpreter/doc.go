// Package interpreter evaluates YCP value trees. Dispatch applies builtin
// operators to evaluated arguments by routing on the kind of the first
// operand, ResolveTerm maps builtin names to their handlers, and Evaluate is
// the tree-walking entry point both of them call back into.
package interpreter
