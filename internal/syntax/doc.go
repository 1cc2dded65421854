// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package syntax turns script text into an ordered list of statements, each
// an operation ID paired with its raw argument tokens.
//
// # Grammar
//
//	script    = ws* [ stmt { ws* ";" ws* stmt } ] ws* [ ";" ] ws*
//	stmt      = [ "set" " " ] name { " " arg }   (Arity args, repeatable if numeric)
//	          | "del" " " modifier
//	arg       = number | bool | string | word | call
//	number    = [ "+" | "-" ] digit { digit } [ "." digit { digit } ]
//	call      = ( "coord" | "rgba" | "size" | "font" ) "(" ... ")"
//
// Exactly one space separates a name from its first argument and each
// argument from the next. Tabs, newlines and repeated spaces inside a
// statement are errors. Statements must be separated by ";" even when they
// sit on different lines.
//
// An operation whose arguments are all numbers may be given several argument
// blocks in one statement, so "resize 200 200 100 100" reads as two resizes.
// The statement keeps every token; splitting happens during coercion, where a
// partial trailing block is rejected.
//
// The 3x3 kernel of filter3x3 may be written as three pipe separated rows,
// "a b c | d e f | g h i". Either both pipes are present or neither.
//
// # Why is the parser arity aware?
//
// A statement like "blur 4 blur 3" is ambiguous unless the parser knows that
// blur takes exactly one argument. Consulting the operation table while
// parsing lets the parser point at the exact token where a statement runs
// long or short instead of reporting a vague failure later on.
//
// The parser only checks the lexical shape of each argument. Whether "-88.0"
// is an acceptable value for an integer argument is decided by the coercion
// layer.
package syntax
