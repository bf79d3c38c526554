// Package calc implements an arbitrary-precision arithmetic calculator.
//
// Expressions use the operators + - * / % ^ with the usual grouping by
// parentheses, unary + and -, and postfix ! on numeric literals. The
// multiplicative operators and ^ share one precedence level, so "2^3^2" is
// "(2^3)^2", and "-3!" is "-(3!)" because ! binds only to the literal before
// it.
//
// There are two evaluation strategies. A Parser builds a syntax tree which a
// Context walks; a Compiler converts the input to postfix order which a
// Context evaluates on its value stack. Both accept the same inputs and give
// the same results. A Calculator ties one of each together for repeated use.
package calc
