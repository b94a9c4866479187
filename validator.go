// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"io"
	"iter"
	"strings"

	"github.com/creachadair/jdoc/lexer"
	"go4.org/mem"
)

// Expect is a class of tokens the grammar may permit next.
type Expect byte

// Constants defining the valid Expect values.
const (
	ExpectObjectBegin Expect = 1 << iota // "{"
	ExpectObjectEnd                      // "}"
	ExpectMemberName                     // string content naming a member
	ExpectMemberValue                    // scalar, "[", or "{"
)

var expectStr = map[Expect]string{
	ExpectObjectBegin: "object begin",
	ExpectObjectEnd:   "object end",
	ExpectMemberName:  "member name",
	ExpectMemberValue: "member value",
}

func (e Expect) String() string {
	if s, ok := expectStr[e]; ok {
		return s
	}
	return "invalid expectation"
}

// admits reports whether a token of kind k satisfies e.
func (e Expect) admits(k lexer.Kind) bool {
	switch e {
	case ExpectObjectBegin:
		return k == lexer.LBrace
	case ExpectObjectEnd:
		return k == lexer.RBrace
	case ExpectMemberName:
		return k == lexer.Content
	case ExpectMemberValue:
		return k.IsScalar() || k == lexer.LSquare || k == lexer.LBrace
	}
	return false
}

// An ExpectSet is a set of Expect values. Any one member of the set is
// acceptable.
type ExpectSet uint8

// Expecting returns an ExpectSet containing the given values.
func Expecting(es ...Expect) ExpectSet {
	var s ExpectSet
	for _, e := range es {
		s |= ExpectSet(e)
	}
	return s
}

// Has reports whether e is a member of s.
func (s ExpectSet) Has(e Expect) bool { return s&ExpectSet(e) != 0 }

// Slice returns the members of s in increasing order.
func (s ExpectSet) Slice() []Expect {
	var out []Expect
	for e := ExpectObjectBegin; e <= ExpectMemberValue; e <<= 1 {
		if s.Has(e) {
			out = append(out, e)
		}
	}
	return out
}

func (s ExpectSet) String() string {
	es := s.Slice()
	ss := make([]string, len(es))
	for i, e := range es {
		ss[i] = e.String()
	}
	return joinOr(ss)
}

// admits reports whether some member of s is satisfied by k.
func (s ExpectSet) admits(k lexer.Kind) bool {
	for e := ExpectObjectBegin; e <= ExpectMemberValue; e <<= 1 {
		if s.Has(e) && e.admits(k) {
			return true
		}
	}
	return false
}

// PartialKind is the type of a partial token.
type PartialKind byte

// Constants defining the valid PartialKind values.
const (
	BeginObject PartialKind = iota + 1 // "{"
	EndObject                          // "}"
	ArrayValue                         // a complete array of scalars
	MemberName                         // the name of an object member
	MemberValue                        // a scalar member value
)

var partialStr = [...]string{
	0:           "invalid partial",
	BeginObject: "begin object",
	EndObject:   "end object",
	ArrayValue:  "array",
	MemberName:  "member name",
	MemberValue: "member value",
}

func (k PartialKind) String() string {
	if int(k) >= len(partialStr) {
		return partialStr[0]
	}
	return partialStr[k]
}

// A Partial is a grammar-validated unit of a JSON document: an object
// boundary, a member name, or a member value.
type Partial struct {
	Kind PartialKind
	Pos  lexer.Pos

	Name  string // for MemberName
	Value Scalar // for MemberValue
	Array Array  // for ArrayValue
}

// A Validator checks the token stream of a JSON document against the grammar
// and reports it as a sequence of partial tokens. Whitespace and quotation
// marks are discarded.
//
// The Validator tracks the set of token classes the grammar permits next. Any
// other token stops validation with a *SyntaxError. Arrays are consumed
// eagerly and may contain only scalar values.
type Validator struct {
	src    mem.RO
	lex    *lexer.Lexer
	expect ExpectSet
	depth  int // number of open objects
	err    error
}

// NewValidator constructs a validator for the JSON document in src.
func NewValidator(src mem.RO) *Validator {
	return &Validator{
		src:    src,
		lex:    lexer.New(src),
		expect: Expecting(ExpectObjectBegin),
	}
}

// Expected reports the set of token classes the grammar currently permits.
func (v *Validator) Expected() ExpectSet { return v.expect }

// Next reports the next partial token of the document. It returns io.EOF
// when the document is complete, or if the input contains no tokens at all.
// Once Next reports an error, all subsequent calls report the same error.
func (v *Validator) Next() (_ Partial, err error) {
	if v.err != nil {
		return Partial{}, v.err
	}
	defer v.recoverInternal(&err)

	tok, ok := v.next()
	if !ok {
		if v.depth == 0 {
			return Partial{}, io.EOF
		}
		return Partial{}, v.fail(&SyntaxError{Kind: UnexpectedEnd, Pos: v.endPos(), Expected: v.expect})
	} else if tok.Kind == lexer.Unknown {
		return Partial{}, v.unexpected(tok)
	} else if !v.expect.admits(tok.Kind) {
		return Partial{}, v.fail(&SyntaxError{Kind: UnexpectedToken, Pos: tok.Pos, Found: tok, Expected: v.expect})
	}

	switch tok.Kind {
	case lexer.LBrace:
		v.depth++
		v.expect = Expecting(ExpectMemberName, ExpectObjectEnd)
		return Partial{Kind: BeginObject, Pos: tok.Pos}, nil

	case lexer.RBrace:
		if v.depth == 0 {
			return Partial{}, v.fail(&SyntaxError{Kind: UnclosedObject, Pos: tok.Pos})
		}
		v.depth--
		if v.depth == 0 {
			// The root object is complete; nothing else may follow it.
			v.expect = Expecting(ExpectObjectEnd)
		} else {
			v.afterValue()
		}
		return Partial{Kind: EndObject, Pos: tok.Pos}, nil

	case lexer.LSquare:
		arr, err := v.parseArray(tok)
		if err != nil {
			return Partial{}, err
		}
		v.afterValue()
		return Partial{Kind: ArrayValue, Pos: tok.Pos, Array: arr}, nil

	case lexer.Content:
		if v.expect.Has(ExpectMemberName) {
			if _, err := v.require(lexer.Colon); err != nil {
				return Partial{}, err
			}
			v.expect = Expecting(ExpectMemberValue, ExpectObjectBegin)
			return Partial{Kind: MemberName, Pos: tok.Pos, Name: tok.Text.StringCopy()}, nil
		} else if !v.expect.Has(ExpectMemberValue) {
			panic(internalf(tok.Pos, "string content admitted by %v", v.expect))
		}
		fallthrough

	case lexer.Integer, lexer.Float, lexer.True, lexer.False, lexer.Null:
		v.afterValue()
		return Partial{Kind: MemberValue, Pos: tok.Pos, Value: scalarOf(tok)}, nil
	}

	panic(internalf(tok.Pos, "%v admitted by %v", tok, v.expect))
}

// All returns an iterator over the partial tokens of the document. Iteration
// stops after the document is complete or after the first error, which is
// yielded with a zero Partial.
func (v *Validator) All() iter.Seq2[Partial, error] {
	return func(yield func(Partial, error) bool) {
		for {
			p, err := v.Next()
			if err == io.EOF {
				return
			} else if !yield(p, err) || err != nil {
				return
			}
		}
	}
}

// parseArray consumes the elements of an array through its closing bracket.
// Precondition: open is the "[" token.
func (v *Validator) parseArray(open lexer.Token) (Array, error) {
	arr := Array{}
	if next, ok := v.peek(); ok && next.Kind == lexer.RSquare {
		v.next()
		return arr, nil
	}
	for {
		tok, ok := v.next()
		if !ok {
			return nil, v.fail(&SyntaxError{Kind: UnclosedArray, Pos: open.Pos, Want: scalarKinds})
		} else if !tok.Kind.IsScalar() {
			return nil, v.unexpected(tok, scalarKinds...)
		}
		arr = append(arr, scalarOf(tok))

		tok, ok = v.next()
		if !ok {
			return nil, v.fail(&SyntaxError{Kind: UnclosedArray, Pos: open.Pos, Want: arraySeps})
		}
		switch tok.Kind {
		case lexer.RSquare:
			return arr, nil
		case lexer.Comma:
			continue
		}
		return nil, v.unexpected(tok, arraySeps...)
	}
}

var (
	scalarKinds = []lexer.Kind{
		lexer.Content, lexer.Integer, lexer.Float, lexer.True, lexer.False, lexer.Null,
	}
	arraySeps = []lexer.Kind{lexer.Comma, lexer.RSquare}
)

// afterValue sets the expectation following a complete member value: if a
// comma follows, it is consumed and another member must follow; otherwise
// the enclosing object must end.
func (v *Validator) afterValue() {
	if next, ok := v.peek(); ok && next.Kind == lexer.Comma {
		v.next()
		v.expect = Expecting(ExpectMemberName)
	} else {
		v.expect = Expecting(ExpectObjectEnd)
	}
}

// require consumes the next token, which must have kind want.
func (v *Validator) require(want lexer.Kind) (lexer.Token, error) {
	tok, ok := v.next()
	if !ok {
		return tok, v.fail(&SyntaxError{Kind: UnexpectedEnd, Pos: v.endPos(), Want: []lexer.Kind{want}})
	} else if tok.Kind != want {
		return tok, v.unexpected(tok, want)
	}
	return tok, nil
}

// unexpected reports tok as an UnknownToken error if the lexer could not
// classify it, or otherwise as an UnexpectedToken error.
func (v *Validator) unexpected(tok lexer.Token, want ...lexer.Kind) error {
	if tok.Kind == lexer.Unknown {
		return v.fail(&SyntaxError{Kind: UnknownToken, Pos: tok.Pos, Found: tok})
	}
	return v.fail(&SyntaxError{Kind: UnexpectedToken, Pos: tok.Pos, Found: tok, Want: want})
}

func (v *Validator) recoverInternal(errp *error) {
	if x := recover(); x != nil {
		ie, ok := x.(*InternalError)
		if !ok {
			panic(x)
		}
		v.err = ie
		*errp = ie
	}
}

func (v *Validator) fail(e *SyntaxError) error {
	e.Location = lexer.Locate(v.src, e.Pos)
	e.Found = detach(e.Found)
	v.err = e
	return e
}

// endPos is the position just past the end of the input.
func (v *Validator) endPos() lexer.Pos { return lexer.Pos(v.src.Len() + 1) }

// next consumes and returns the next significant token.
func (v *Validator) next() (lexer.Token, bool) { return significant(v.lex) }

// peek returns the next significant token without consuming it.
func (v *Validator) peek() (lexer.Token, bool) {
	cp := *v.lex
	return significant(&cp)
}

// significant returns the next token from lx that is neither whitespace nor a
// quotation mark. Quotation marks carry no information beyond the content
// tokens they delimit.
func significant(lx *lexer.Lexer) (lexer.Token, bool) {
	for {
		tok, ok := lx.Next()
		if !ok || (tok.Kind != lexer.Whitespace && tok.Kind != lexer.Quote) {
			return tok, ok
		}
	}
}

// scalarOf converts a scalar token to its value. String content is copied
// out of the source text.
func scalarOf(tok lexer.Token) Scalar {
	switch tok.Kind {
	case lexer.Content:
		return String(tok.Text.StringCopy())
	case lexer.Integer:
		return Integer(tok.Int())
	case lexer.Float:
		return Float(tok.Float())
	case lexer.True:
		return Bool(true)
	case lexer.False:
		return Bool(false)
	case lexer.Null:
		return Null{}
	}
	panic(internalf(tok.Pos, "%v is not a scalar", tok))
}

// String renders a one-line summary of p for diagnostics.
func (p Partial) String() string {
	var sb strings.Builder
	sb.WriteString(p.Kind.String())
	switch p.Kind {
	case MemberName:
		sb.WriteString(" " + p.Name)
	case MemberValue:
		sb.WriteString(" " + formatScalar(p.Value))
	case ArrayValue:
		sb.WriteString(" [")
		for i, s := range p.Array {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(formatScalar(s))
		}
		sb.WriteString("]")
	}
	return sb.String()
}
