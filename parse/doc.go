// Package parse is a recursive descent syntax analyzer for a reduced C
// language. It builds a syntax tree from a lexer.TokenSource and stops at
// the first error.
//
// Typedef names are told apart from ordinary identifiers by a
// TypeNameOracle, which the parser keeps up to date as declarations
// complete and blocks open and close.
//
// Glossary:
//
// Declarator
// ----------
//
// A declarator is the part of a declaration that specifies
// the name that is to be introduced into the program.
//
// e.g.
// unsigned int a, *b, **c, *const*d *volatile*e ;
//              ^  ^^  ^^^  ^^^^^^^^ ^^^^^^^^^^^
//
// Direct Declarator
// -----------------
//
// A direct declarator is missing the pointer prefix.
//
// e.g.
// unsigned int a[32], b[];
//              ^^^^^  ^^^
//
// Abstract Declarator
// -------------------
//
// A declarator missing an identifier, as found in casts, sizeof and
// parameter lists.
//
// e.g.
// sizeof(int (*)[4])
//            ^^^^^^
//
// Type Name
// ---------
//
// Specifiers and qualifiers followed by an optional abstract declarator.
// A '(' followed by the start of a type name begins a cast, a compound
// literal or the operand of sizeof.
package parse
