package parser

import (
	"sort"

	"github.com/thiremani/lox/token"
)

type Precedence int

// Binding strength, weakest first.
const (
	_ Precedence = iota
	ASSIGNMENT   // =
	OR           // or
	AND          // and
	EQUALITY     // == !=
	COMPARISON   // > < >= <=
	TERM         // + -
	FACTOR       // * /
	UNARY        // -X or !X
	PRIMARY      // literals, grouping, calls
)

const LOWEST = ASSIGNMENT

var precedenceNames = [...]string{
	ASSIGNMENT: "assignment",
	OR:         "or",
	AND:        "and",
	EQUALITY:   "equality",
	COMPARISON: "comparison",
	TERM:       "term",
	FACTOR:     "factor",
	UNARY:      "unary",
	PRIMARY:    "primary",
}

func (p Precedence) String() string {
	if 0 < p && int(p) < len(precedenceNames) {
		return precedenceNames[p]
	}
	return "none"
}

type Assoc int

const (
	NonAssoc Assoc = iota
	LeftAssoc
	RightAssoc
)

func (a Assoc) String() string {
	switch a {
	case LeftAssoc:
		return "left"
	case RightAssoc:
		return "right"
	}
	return "none"
}

// Entry is one row of the operator table.
type Entry struct {
	Symbol string
	Level  Precedence
	Assoc  Assoc
	Prefix bool
}

var binary = map[token.TokenType]Entry{
	token.ASSIGN: {"=", ASSIGNMENT, RightAssoc, false},
	token.OR:     {"or", OR, LeftAssoc, false},
	token.AND:    {"and", AND, LeftAssoc, false},
	token.EQL:    {"==", EQUALITY, LeftAssoc, false},
	token.NEQ:    {"!=", EQUALITY, LeftAssoc, false},
	token.GTR:    {">", COMPARISON, LeftAssoc, false},
	token.LSS:    {"<", COMPARISON, LeftAssoc, false},
	token.GEQ:    {">=", COMPARISON, LeftAssoc, false},
	token.LEQ:    {"<=", COMPARISON, LeftAssoc, false},
	token.ADD:    {"+", TERM, LeftAssoc, false},
	token.SUB:    {"-", TERM, LeftAssoc, false},
	token.MUL:    {"*", FACTOR, LeftAssoc, false},
	token.QUO:    {"/", FACTOR, LeftAssoc, false},
}

var prefix = map[token.TokenType]Entry{
	token.SUB: {"-", UNARY, RightAssoc, true},
	token.NOT: {"!", UNARY, RightAssoc, true},
}

// Lookup returns the infix entry for t. Assignment is included; it is
// special-cased by the expression parser.
func Lookup(t token.TokenType) (Entry, bool) {
	e, ok := binary[t]
	return e, ok
}

// LookupPrefix returns the prefix entry for t.
func LookupPrefix(t token.TokenType) (Entry, bool) {
	e, ok := prefix[t]
	return e, ok
}

// Operators returns every table entry ordered by level, then symbol.
func Operators() []Entry {
	out := make([]Entry, 0, len(binary)+len(prefix))
	for _, e := range binary {
		out = append(out, e)
	}
	for _, e := range prefix {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level < out[j].Level
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}

// rightBindingPower is the threshold for the right operand of e.
func rightBindingPower(e Entry) Precedence {
	if e.Assoc == RightAssoc {
		return e.Level
	}
	return e.Level + 1
}
