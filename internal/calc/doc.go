// Package calc evaluates arithmetic expressions without executing code.
//
// Expressions are parsed into a small expression tree (numbers, unary and
// binary operators) and interpreted. Accepted syntax:
//
//	integers and decimals (1, 2.5, .5, 1e3), parentheses,
//	unary + and -, binary + - * / // % **
//
// Numeric behaviour follows the usual scripting-language conventions:
// integers are arbitrary precision, "/" always yields a float, "//" and "%"
// floor toward negative infinity, and "**" is right-associative and binds
// tighter than a unary minus on its left (-2**2 == -4).
//
// Names, calls, attribute access, strings and every other construct are
// rejected at parse time.
package calc
