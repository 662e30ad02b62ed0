package parser

import (
	"fmt"

	"github.com/fernlang/fern/diag"
	"github.com/fernlang/fern/lexer"
)

const debug = false

// Recovery reason codes. The exact strings are a stable interface: they
// appear in e-malformed nodes and golden snapshots.
const (
	ReasonExpectedExpr             = "expected_expr"
	ReasonExpectedCloseOrComma     = "expected_expr_close_round_or_comma"
	ReasonUnexpectedToken          = "expr_unexpected_token"
	ReasonExpectedLambdaArg        = "expected_lambda_arg"
	ReasonExpectedArrowAfterLambda = "expected_arrow_after_lambda_args"
	ReasonExpectedExprAfterAssign  = "expected_expr_after_assign"
)

var reasonMessages = map[string]string{
	ReasonExpectedExpr:             "I was expecting an expression here.",
	ReasonExpectedCloseOrComma:     "I was expecting a closing parenthesis or a comma here.",
	ReasonUnexpectedToken:          "I got stuck on this token while finishing an expression.",
	ReasonExpectedLambdaArg:        "I was expecting at least one argument name after `\\`.",
	ReasonExpectedArrowAfterLambda: "I was expecting `->` after the lambda arguments.",
	ReasonExpectedExprAfterAssign:  "I was expecting an expression after `=`.",
}

type parser struct {
	src        []byte
	toks       []lexer.Token
	i          int
	diags      []diag.Diagnostic
	recovering bool
	indent     int
}

// Parse consumes the full token sequence for src and produces exactly one
// root CST node, possibly malformed, plus accumulated diagnostics. It never
// panics on malformed input; the same source always yields the same tree and
// the same diagnostic codes.
func Parse(src []byte) (Node, []diag.Diagnostic) {
	return ParseTokens(src, lexer.Tokenize(src))
}

// ParseTokens is Parse for a token sequence produced earlier. The tokens must
// have been derived from src (malformed nodes slice their raw text out of it).
func ParseTokens(src []byte, toks []lexer.Token) (Node, []diag.Diagnostic) {
	p := &parser{src: src, toks: toks}
	root := p.parseUnit()
	return root, p.diags
}

func (p *parser) trace(msg string) func() {
	if debug {
		fmt.Printf("%*s%s\n", p.indent*2, "", msg)
		p.indent++
		return func() { p.indent-- }
	}
	return func() {}
}

func (p *parser) tok() lexer.Token { return p.toks[p.i] }

func (p *parser) next() {
	if p.toks[p.i].Type != lexer.EndOfFile {
		p.i++
	}
}

func (p *parser) peek() lexer.Token {
	if p.toks[p.i].Type == lexer.EndOfFile {
		return p.toks[p.i]
	}
	return p.toks[p.i+1]
}

func (p *parser) skipNewlines() {
	for p.tok().Type == lexer.Newline {
		p.next()
	}
}

func (p *parser) raw(span lexer.Span) string {
	return string(p.src[span.Start.Offset:span.End.Offset])
}

// errorAt records one parse diagnostic unless the parser is already
// recovering from an earlier failure in the same statement. Suppression keeps
// a single broken region from cascading into a diagnostic per garbage token.
func (p *parser) errorAt(reason string, span lexer.Span) {
	if p.recovering {
		return
	}
	p.recovering = true
	p.diags = append(p.diags, diag.Diagnostic{
		Severity: diag.SeverityError,
		Category: diag.ParseError,
		Code:     reason,
		Message:  reasonMessages[reason],
		Span:     span,
	})
}

// missingExpr reports a hole where an expression was required. Nothing is
// consumed; the malformed node is zero-width at the offending token.
func (p *parser) missingExpr(reason string) Node {
	at := p.tok().Span
	p.errorAt(reason, at)
	empty := lexer.Span{Start: at.Start, End: at.Start}
	return Malformed{Reason: reason, Raw: "", span: empty}
}

// recoverGroup reports a failure inside a parenthesized group and resumes
// after the group's closing delimiter (or at end of input).
func (p *parser) recoverGroup(reason string, start lexer.Span) Node {
	p.errorAt(reason, p.tok().Span)
	for {
		switch p.tok().Type {
		case lexer.CloseRound:
			span := start.Add(p.tok().Span)
			p.next()
			return Malformed{Reason: reason, Raw: p.raw(span), span: span}
		case lexer.EndOfFile:
			span := start.Add(p.tok().Span)
			return Malformed{Reason: reason, Raw: p.raw(span), span: span}
		}
		p.next()
	}
}

// recoverStmt reports a failure at statement level and resumes at the next
// statement boundary. Closing delimiters are left for the enclosing group.
func (p *parser) recoverStmt(reason string, start lexer.Span) Node {
	p.errorAt(reason, p.tok().Span)
	span := start
	for {
		switch p.tok().Type {
		case lexer.Newline, lexer.CloseRound, lexer.EndOfFile:
			return Malformed{Reason: reason, Raw: p.raw(span), span: span}
		}
		span = span.Add(p.tok().Span)
		p.next()
	}
}

// recoverLine is recoverStmt for the top level of a unit, where there is no
// enclosing group: everything up to the next line break is consumed,
// guaranteeing progress past stray closing delimiters.
func (p *parser) recoverLine(reason string) Node {
	start := p.tok().Span
	p.errorAt(reason, start)
	span := start
	for p.tok().Type != lexer.Newline && p.tok().Type != lexer.EndOfFile {
		span = span.Add(p.tok().Span)
		p.next()
	}
	return Malformed{Reason: reason, Raw: p.raw(span), span: span}
}

func (p *parser) parseUnit() Node {
	defer p.trace("parseUnit")()
	p.skipNewlines()
	var stmts []Node
	for p.tok().Type != lexer.EndOfFile {
		p.recovering = false
		var stmt Node
		if p.tok().Type == lexer.LowerIdent && p.peek().Type == lexer.OpAssign {
			stmt = p.parseDef()
		} else {
			stmt = p.parseExpr(lexer.MinPrec)
		}
		stmts = append(stmts, stmt)
		switch p.tok().Type {
		case lexer.Newline:
			p.skipNewlines()
		case lexer.EndOfFile:
		default:
			stmts = append(stmts, p.recoverLine(ReasonUnexpectedToken))
			p.skipNewlines()
		}
	}
	switch len(stmts) {
	case 0:
		eofSpan := p.tok().Span
		p.errorAt(ReasonExpectedExpr, eofSpan)
		return Malformed{Reason: ReasonExpectedExpr, Raw: "", span: eofSpan}
	case 1:
		if _, ok := stmts[0].(Def); !ok {
			return stmts[0]
		}
	}
	span := stmts[0].Span()
	for _, stmt := range stmts[1:] {
		span = span.Add(stmt.Span())
	}
	return Unit{Stmts: stmts, span: span}
}

func (p *parser) parseDef() Node {
	defer p.trace("parseDef")()
	name := p.tok()
	p.next() // name
	p.next() // =
	if !p.tok().BeginsExpr() {
		return p.recoverStmt(ReasonExpectedExprAfterAssign, name.Span)
	}
	return Def{Name: name, Body: p.parseExpr(lexer.MinPrec)}
}

// parseExpr implements precedence climbing over the binary operator tokens;
// all arithmetic operators are left-associative.
func (p *parser) parseExpr(minPrec int) Node {
	defer p.trace("parseExpr")()
	lhs := p.parsePrefix()
	for p.tok().IsBinaryOp() && p.tok().Prec() >= minPrec {
		op := p.tok()
		p.next()
		nextMin := op.Prec()
		if op.IsLeftAssoc() {
			nextMin = op.Prec() + 1
		}
		var rhs Node
		if p.tok().BeginsExpr() {
			rhs = p.parseExpr(nextMin)
		} else {
			rhs = p.missingExpr(ReasonExpectedExpr)
		}
		lhs = BinaryOp{Left: lhs, Op: op, Right: rhs}
	}
	return lhs
}

func (p *parser) parsePrefix() Node {
	defer p.trace("parsePrefix")()
	if p.tok().Type == lexer.OpUnaryMinus {
		op := p.tok()
		p.next()
		if !p.tok().BeginsExpr() {
			return p.missingExpr(ReasonExpectedExpr)
		}
		return UnaryOp{Op: op, Operand: p.parsePrefix()}
	}
	return p.parseApply()
}

func (p *parser) parseApply() Node {
	defer p.trace("parseApply")()
	fn := p.parsePrimary()
	for p.tok().Type == lexer.OpenRound && !isMalformed(fn) {
		group := p.parseParenGroup()
		if m, ok := group.(Malformed); ok {
			span := fn.Span().Add(m.span)
			return Malformed{Reason: m.Reason, Raw: p.raw(span), span: span}
		}
		span := fn.Span().Add(group.Span())
		switch g := group.(type) {
		case Paren:
			fn = Call{Fn: fn, Args: []Node{g.Inner}, span: span}
		case Tuple:
			fn = Call{Fn: fn, Args: g.Elems, span: span}
		}
	}
	return fn
}

func (p *parser) parsePrimary() Node {
	defer p.trace("parsePrimary")()
	tok := p.tok()
	switch tok.Type {
	case lexer.Int:
		p.next()
		return IntLit{Tok: tok}
	case lexer.LowerIdent:
		p.next()
		return VarRef{Tok: tok}
	case lexer.UpperIdent:
		p.next()
		return TagRef{Tok: tok}
	case lexer.OpaqueName:
		p.next()
		return OpaqueRef{Tok: tok}
	case lexer.OpBackslash:
		return p.parseLambda()
	case lexer.OpenRound:
		return p.parseParenGroup()
	}
	return p.missingExpr(ReasonExpectedExpr)
}

func (p *parser) parseLambda() Node {
	defer p.trace("parseLambda")()
	backslash := p.tok()
	p.next()
	var params []lexer.Token
	for p.tok().Type == lexer.LowerIdent {
		params = append(params, p.tok())
		p.next()
	}
	if len(params) == 0 {
		return p.recoverStmt(ReasonExpectedLambdaArg, backslash.Span)
	}
	if p.tok().Type != lexer.OpArrow {
		return p.recoverStmt(ReasonExpectedArrowAfterLambda, backslash.Span)
	}
	p.next()
	var body Node
	if p.tok().BeginsExpr() {
		body = p.parseExpr(lexer.MinPrec)
	} else {
		body = p.missingExpr(ReasonExpectedExpr)
	}
	return Lambda{Backslash: backslash, Params: params, Body: body}
}

// parseParenGroup parses "(" ... ")" into the unit tuple, a parenthesized
// expression, or a tuple, recovering past the closing delimiter on failure.
// Newlines inside a group are not significant.
func (p *parser) parseParenGroup() Node {
	defer p.trace("parseParenGroup")()
	open := p.tok()
	p.next()
	p.skipNewlines()
	if p.tok().Type == lexer.CloseRound {
		span := open.Span.Add(p.tok().Span)
		p.next()
		return Tuple{span: span}
	}
	var elems []Node
	for {
		if !p.tok().BeginsExpr() {
			reason := ReasonExpectedExpr
			if len(elems) > 0 {
				reason = ReasonExpectedCloseOrComma
			}
			return p.recoverGroup(reason, open.Span)
		}
		elems = append(elems, p.parseExpr(lexer.MinPrec))
		p.skipNewlines()
		switch p.tok().Type {
		case lexer.Comma:
			p.next()
			p.skipNewlines()
			if p.tok().Type == lexer.CloseRound {
				span := open.Span.Add(p.tok().Span)
				p.next()
				return Tuple{Elems: elems, span: span}
			}
		case lexer.CloseRound:
			span := open.Span.Add(p.tok().Span)
			p.next()
			if len(elems) == 1 {
				return Paren{Inner: elems[0], span: span}
			}
			return Tuple{Elems: elems, span: span}
		default:
			return p.recoverGroup(ReasonExpectedCloseOrComma, open.Span)
		}
	}
}
