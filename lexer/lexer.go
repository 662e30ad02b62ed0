package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/smasher164/xid"
)

const eof = -1

type lexer struct {
	src  []byte
	ch   rune
	w    int
	off  int
	line int
	col  int
}

// Tokenize converts source bytes into a finite token sequence ending in
// exactly one EndOfFile token. It is total: lexically invalid byte sequences
// (including invalid UTF-8) become Unknown tokens instead of errors. Newlines
// are emitted as tokens; spaces and tabs are consumed silently.
func Tokenize(src []byte) []Token {
	l := &lexer{src: src, line: 1, col: 1}
	l.load()
	var toks []Token
	for {
		tok := l.scan()
		toks = append(toks, tok)
		if tok.Type == EndOfFile {
			return toks
		}
	}
}

func (l *lexer) load() {
	if l.off >= len(l.src) {
		l.ch, l.w = eof, 0
		return
	}
	l.ch, l.w = utf8.DecodeRune(l.src[l.off:])
}

func (l *lexer) advance() {
	if l.ch == eof {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.off += l.w
	l.load()
}

func (l *lexer) pos() Pos {
	return Pos{Offset: l.off, Line: l.line, Column: l.col}
}

func (l *lexer) emit(ttyp TokenType, start Pos) Token {
	return Token{
		Type: ttyp,
		Span: Span{Start: start, End: l.pos()},
		Text: string(l.src[start.Offset:l.off]),
	}
}

func isDecimal(ch rune) bool { return '0' <= ch && ch <= '9' }

func isIdentStart(ch rune) bool { return ch == '_' || xid.Start(ch) }

func isIdentContinue(ch rune) bool { return ch == '_' || xid.Continue(ch) }

func (l *lexer) scan() Token {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.advance()
	}
	start := l.pos()
	switch {
	case l.ch == eof:
		return Token{Type: EndOfFile, Span: Span{Start: start, End: start}}
	case l.ch == '\n':
		l.advance()
		return l.emit(Newline, start)
	case isDecimal(l.ch):
		return l.lexNumber(start)
	case isIdentStart(l.ch):
		return l.lexIdent(start)
	case l.ch == '@':
		return l.lexOpaque(start)
	case l.ch == '-':
		return l.lexMinus(start)
	}
	if ttyp, ok := singleCharTokens[l.ch]; ok {
		l.advance()
		return l.emit(ttyp, start)
	}
	l.advance()
	return l.emit(Unknown, start)
}

var singleCharTokens = map[rune]TokenType{
	'+':  OpPlus,
	'*':  OpStar,
	'/':  OpSlash,
	'=':  OpAssign,
	'\\': OpBackslash,
	'(':  OpenRound,
	')':  CloseRound,
	',':  Comma,
}

func (l *lexer) lexNumber(start Pos) Token {
	for isDecimal(l.ch) || l.ch == '_' {
		l.advance()
	}
	return l.emit(Int, start)
}

// Identifiers are classified at lex time: an upper-case-leading identifier is
// a nominal/tag name, everything else is a binding name.
func (l *lexer) lexIdent(start Pos) Token {
	first := l.ch
	l.advance()
	for isIdentContinue(l.ch) {
		l.advance()
	}
	if unicode.IsUpper(first) {
		return l.emit(UpperIdent, start)
	}
	return l.emit(LowerIdent, start)
}

func (l *lexer) lexOpaque(start Pos) Token {
	l.advance()
	if !isIdentStart(l.ch) {
		return l.emit(Unknown, start)
	}
	for isIdentContinue(l.ch) {
		l.advance()
	}
	return l.emit(OpaqueName, start)
}

// A minus is unary when it follows start-of-input, whitespace, an opening
// delimiter, a comma, or another operator AND the next byte starts an operand
// with no intervening space. Everything else is the binary operator, so "1-2"
// subtracts while "1 -2" is a one followed by a negated two.
func (l *lexer) lexMinus(start Pos) Token {
	gapBefore := start.Offset == 0 || isGapByte(l.src[start.Offset-1])
	l.advance()
	if l.ch == '>' {
		l.advance()
		return l.emit(OpArrow, start)
	}
	tightAfter := l.ch != eof && l.ch != ' ' && l.ch != '\t' && l.ch != '\r' && l.ch != '\n'
	if gapBefore && tightAfter {
		return l.emit(OpUnaryMinus, start)
	}
	return l.emit(OpBinaryMinus, start)
}

func isGapByte(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '(', ',', '=', '+', '-', '*', '/', '\\', '>':
		return true
	}
	return false
}
