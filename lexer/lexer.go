// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package lexer implements a lexical scanner for JSON text.
package lexer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/creachadair/jdoc/internal/escape"
	"go4.org/mem"
)

// Kind is the type of a lexical token in the JSON grammar.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid    Kind = iota // invalid token
	Whitespace             // run of space, tab, CR, LF
	LBrace                 // left brace "{"
	RBrace                 // right brace "}"
	LSquare                // left square bracket "["
	RSquare                // right square bracket "]"
	Colon                  // name separator ":"
	Comma                  // value separator ","
	Quote                  // quotation mark '"'
	Content                // string content between quotation marks
	Integer                // number: integer with no fraction or exponent
	Float                  // number with fraction and/or exponent
	True                   // constant: true
	False                  // constant: false
	Null                   // constant: null
	Unknown                // text that could not be classified

	// Do not modify the order of these constants without updating the scalar
	// kind check below.
)

var kindStr = [...]string{
	Invalid:    "invalid token",
	Whitespace: "whitespace",
	LBrace:     `"{"`,
	RBrace:     `"}"`,
	LSquare:    `"["`,
	RSquare:    `"]"`,
	Colon:      `":"`,
	Comma:      `","`,
	Quote:      "quotation mark",
	Content:    "string",
	Integer:    "integer",
	Float:      "float",
	True:       "true",
	False:      "false",
	Null:       "null",
	Unknown:    "unknown token",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[v]
}

// IsScalar reports whether k is the kind of a token that denotes a scalar
// value: string content, a number, or one of the constants.
func (k Kind) IsScalar() bool { return k >= Content && k <= Null }

// A Token is a single lexical token and its location in the source.
type Token struct {
	Kind Kind
	Pos  Pos
	Text mem.RO // a view of the raw source text of the token

	ival int64
	fval float64
}

// Int returns the value of an Integer token. It returns 0 for other kinds.
func (t Token) Int() int64 { return t.ival }

// Float returns the value of a Float token. It returns 0 for other kinds.
func (t Token) Float() float64 { return t.fval }

// String renders a human-readable description of t for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case Content, Unknown:
		return fmt.Sprintf("%v %s", t.Kind, escape.Quote(t.Text))
	case Integer, Float:
		return fmt.Sprintf("%v %s", t.Kind, t.Text.StringCopy())
	}
	return t.Kind.String()
}

// A Lexer splits source text into lexical tokens. Each call to Next reports
// the next token of the input until the input is exhausted. A Lexer never
// fails: text it cannot classify is reported as an Unknown token, and it is
// up to the caller to decide whether that is an error.
//
// The Lexer does not decode string escapes. When the previous token was an
// opening quotation mark, everything up to the next quotation mark is
// reported verbatim as a single Content token.
type Lexer struct {
	src  mem.RO
	off  int     // 0-based offset of the next unread byte
	last [2]Kind // kinds of the two most recent tokens, oldest first
}

// New constructs a lexer that reads tokens from src.
func New(src mem.RO) *Lexer { return &Lexer{src: src} }

// Next reports the next token of the input, or false if the input is
// exhausted.
func (lx *Lexer) Next() (Token, bool) {
	if lx.off >= lx.src.Len() {
		return Token{}, false
	}
	var tok Token
	if lx.expectsContent() && lx.src.At(lx.off) != '"' {
		tok = lx.scanContent()
	} else {
		tok = lx.scan()
	}
	lx.last[0], lx.last[1] = lx.last[1], tok.Kind
	return tok, true
}

// Peek reports the token that the next call to Next would return, without
// consuming it.
func (lx *Lexer) Peek() (Token, bool) {
	cp := *lx
	return cp.Next()
}

// expectsContent reports whether the lexer is positioned just after an
// opening quotation mark. A quotation mark opens a string unless it follows
// string content or another quotation mark, in which case it closes one.
func (lx *Lexer) expectsContent() bool {
	return lx.last[1] == Quote && lx.last[0] != Content && lx.last[0] != Quote
}

func (lx *Lexer) scan() Token {
	start := lx.off
	ch, n := mem.DecodeRune(lx.src.SliceFrom(start))
	switch {
	case isSpace(ch):
		lx.off += n
		lx.skipWhile(isSpace)
		return lx.token(Whitespace, start)
	case ch == '"':
		lx.off += n
		return lx.token(Quote, start)
	case isNumStart(ch):
		return lx.scanNumber(start)
	case unicode.IsLetter(ch):
		return lx.scanName(start)
	}
	lx.off += n
	if k, ok := selfDelim(ch); ok {
		return lx.token(k, start)
	}
	return lx.token(Unknown, start)
}

// scanContent consumes everything up to, but not including, the next
// quotation mark or the end of input.
func (lx *Lexer) scanContent() Token {
	start := lx.off
	if i := mem.IndexByte(lx.src.SliceFrom(start), '"'); i < 0 {
		lx.off = lx.src.Len()
	} else {
		lx.off += i
	}
	return lx.token(Content, start)
}

// scanNumber consumes a greedy run of digits and decimal points, with an
// optional leading sign and exponent. A run that does not parse as a number
// is reported as Unknown.
func (lx *Lexer) scanNumber(start int) Token {
	if lx.src.At(lx.off) == '-' {
		lx.off++
	}
	digits := lx.skipWhile(isNumRune) > 0
	isFloat := mem.IndexByte(lx.src.Slice(start, lx.off), '.') >= 0

	if digits && lx.off < lx.src.Len() && (lx.src.At(lx.off) == 'e' || lx.src.At(lx.off) == 'E') {
		lx.off++
		if lx.off < lx.src.Len() && (lx.src.At(lx.off) == '-' || lx.src.At(lx.off) == '+') {
			lx.off++
		}
		lx.skipWhile(isDigit)
		isFloat = true
	}

	tok := lx.token(Integer, start)
	var err error
	if isFloat {
		tok.Kind = Float
		tok.fval, err = mem.ParseFloat(tok.Text, 64)
	} else {
		tok.ival, err = mem.ParseInt(tok.Text, 10, 64)
	}
	if err != nil {
		return Token{Kind: Unknown, Pos: tok.Pos, Text: tok.Text}
	}
	return tok
}

// scanName consumes a maximal run of letters and compares it to the names
// of the constants.
func (lx *Lexer) scanName(start int) Token {
	lx.skipWhile(unicode.IsLetter)
	tok := lx.token(Unknown, start)
	switch {
	case tok.Text.EqualString("true"):
		tok.Kind = True
	case tok.Text.EqualString("false"):
		tok.Kind = False
	case tok.Text.EqualString("null"):
		tok.Kind = Null
	}
	return tok
}

// skipWhile consumes runes matching f until the end of input or a rune that
// does not match, and reports the number of runes consumed.
func (lx *Lexer) skipWhile(f func(rune) bool) int {
	var nr int
	for lx.off < lx.src.Len() {
		ch, n := mem.DecodeRune(lx.src.SliceFrom(lx.off))
		if !f(ch) {
			break
		}
		lx.off += n
		nr++
	}
	return nr
}

func (lx *Lexer) token(k Kind, start int) Token {
	return Token{Kind: k, Pos: Pos(start + 1), Text: lx.src.Slice(start, lx.off)}
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }
func isNumRune(ch rune) bool  { return ch == '.' || isDigit(ch) }
func isNumStart(ch rune) bool { return ch == '-' || isNumRune(ch) }

var self = [...]Kind{LBrace, RBrace, LSquare, RSquare, Colon, Comma}

func selfDelim(ch rune) (Kind, bool) {
	i := strings.IndexRune("{}[]:,", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
