// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package rangeexpr

import "fmt"

// Op is one clause's comparison operator.
type Op int

const (
	OpEq Op = iota
	OpLt
	OpLe
	OpGt
	OpGe
	OpBetween
)

// Clause is one parsed `column OP literal` (or `column BETWEEN lo AND hi`)
// condition. Lit and HiLit are the literal's raw source text — Compile
// resolves them against the column's scalar.Tag, since the lexer/parser
// never sees column types.
type Clause struct {
	Column string
	Op     Op
	Lit    string
	HiLit  string // only set when Op == OpBetween
}

// Predicate is a conjunction ("AND" only, never "OR") of Clauses.
type Predicate struct {
	Clauses []Clause
}

// Parse parses src as a Predicate: one or more `column OP literal` clauses
// joined by AND. It does not know or care about column types; literal text
// is kept verbatim and resolved by Compile.
func Parse(src string) (Predicate, error) {
	l := newLexer(src)
	tok, err := l.Next()
	if err != nil {
		return Predicate{}, err
	}

	var clauses []Clause
	for {
		clause, next, err := parseClause(l, tok)
		if err != nil {
			return Predicate{}, err
		}
		clauses = append(clauses, clause)
		tok = next
		if tok.Type == EOF {
			break
		}
		if tok.Type != AND {
			return Predicate{}, fmt.Errorf("rangeexpr: expected AND or end of input, got %v %q", tok.Type, tok.Lit)
		}
		tok, err = l.Next()
		if err != nil {
			return Predicate{}, err
		}
	}
	return Predicate{Clauses: clauses}, nil
}

// parseClause consumes one `column OP literal` clause starting at tok
// (expected to be an IDENT) and returns it along with the token that
// follows the clause.
func parseClause(l *lexer, tok Token) (Clause, Token, error) {
	if tok.Type != IDENT {
		return Clause{}, Token{}, fmt.Errorf("rangeexpr: expected column name, got %v %q", tok.Type, tok.Lit)
	}
	column := tok.Lit

	opTok, err := l.Next()
	if err != nil {
		return Clause{}, Token{}, err
	}

	if opTok.Type == BETWEEN {
		loTok, err := l.Next()
		if err != nil {
			return Clause{}, Token{}, err
		}
		lo, err := literalText(loTok)
		if err != nil {
			return Clause{}, Token{}, err
		}
		andTok, err := l.Next()
		if err != nil {
			return Clause{}, Token{}, err
		}
		if andTok.Type != AND {
			return Clause{}, Token{}, fmt.Errorf("rangeexpr: expected AND in BETWEEN clause, got %v %q", andTok.Type, andTok.Lit)
		}
		hiTok, err := l.Next()
		if err != nil {
			return Clause{}, Token{}, err
		}
		hi, err := literalText(hiTok)
		if err != nil {
			return Clause{}, Token{}, err
		}
		next, err := l.Next()
		if err != nil {
			return Clause{}, Token{}, err
		}
		return Clause{Column: column, Op: OpBetween, Lit: lo, HiLit: hi}, next, nil
	}

	var op Op
	switch opTok.Type {
	case EQ:
		op = OpEq
	case LT:
		op = OpLt
	case LE:
		op = OpLe
	case GT:
		op = OpGt
	case GE:
		op = OpGe
	default:
		return Clause{}, Token{}, fmt.Errorf("rangeexpr: expected comparison operator, got %v %q", opTok.Type, opTok.Lit)
	}

	litTok, err := l.Next()
	if err != nil {
		return Clause{}, Token{}, err
	}
	lit, err := literalText(litTok)
	if err != nil {
		return Clause{}, Token{}, err
	}
	next, err := l.Next()
	if err != nil {
		return Clause{}, Token{}, err
	}
	return Clause{Column: column, Op: op, Lit: lit}, next, nil
}

func literalText(tok Token) (string, error) {
	if tok.Type != NUMBER && tok.Type != STRING {
		return "", fmt.Errorf("rangeexpr: expected a literal, got %v %q", tok.Type, tok.Lit)
	}
	return tok.Lit, nil
}
