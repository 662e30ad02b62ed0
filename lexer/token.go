package lexer

import "fmt"

type TokenType int

const (
	EndOfFile TokenType = iota
	Newline
	Int
	LowerIdent
	UpperIdent
	OpaqueName
	OpPlus
	OpBinaryMinus
	OpUnaryMinus
	OpStar
	OpSlash
	OpAssign
	OpArrow
	OpBackslash
	OpenRound
	CloseRound
	Comma
	Unknown
)

func (t TokenType) String() string {
	switch t {
	case EndOfFile:
		return "EndOfFile"
	case Newline:
		return "Newline"
	case Int:
		return "Int"
	case LowerIdent:
		return "LowerIdent"
	case UpperIdent:
		return "UpperIdent"
	case OpaqueName:
		return "OpaqueName"
	case OpPlus:
		return "OpPlus"
	case OpBinaryMinus:
		return "OpBinaryMinus"
	case OpUnaryMinus:
		return "OpUnaryMinus"
	case OpStar:
		return "OpStar"
	case OpSlash:
		return "OpSlash"
	case OpAssign:
		return "OpAssign"
	case OpArrow:
		return "OpArrow"
	case OpBackslash:
		return "OpBackslash"
	case OpenRound:
		return "OpenRound"
	case CloseRound:
		return "CloseRound"
	case Comma:
		return "Comma"
	case Unknown:
		return "Unknown"
	default:
		return "UNKNOWN"
	}
}

// Pos is a position in the source. Line and Column are 1-based, Offset is a
// 0-based byte offset.
type Pos struct {
	Offset int
	Line   int
	Column int
}

// Span is a half-open source region: Start is the first position covered,
// End is one past the last. End never precedes Start.
type Span struct {
	Start Pos
	End   Pos
}

func (s Span) Add(other Span) Span {
	res := s
	if res.Start.Line == 0 || other.Start.Line != 0 && other.Start.Offset < res.Start.Offset {
		res.Start = other.Start
	}
	if other.End.Offset > res.End.Offset {
		res.End = other.End
	}
	return res
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// Dotted is the span form used in s-expression renderings, e.g. "1.1-1.2".
func (s Span) Dotted() string {
	return fmt.Sprintf("%d.%d-%d.%d", s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

type Token struct {
	Type TokenType
	Span Span
	Text string
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%s)", t.Type, t.Span)
}

func (t Token) IsBinaryOp() bool {
	switch t.Type {
	case OpPlus, OpBinaryMinus, OpStar, OpSlash:
		return true
	}
	return false
}

const MinPrec = 1

func (t Token) Prec() int {
	switch t.Type {
	case OpStar, OpSlash:
		return 7
	case OpPlus, OpBinaryMinus:
		return 6
	}
	return 0
}

func (t Token) IsLeftAssoc() bool {
	switch t.Type {
	case OpPlus, OpBinaryMinus, OpStar, OpSlash:
		return true
	}
	return false
}

// BeginsExpr reports whether a token can start an expression. The parser uses
// it to decide between reporting a missing expression and an unexpected token.
func (t Token) BeginsExpr() bool {
	switch t.Type {
	case Int, LowerIdent, UpperIdent, OpaqueName, OpenRound, OpBackslash, OpUnaryMinus:
		return true
	}
	return false
}
