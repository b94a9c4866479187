// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"fmt"
	"strings"

	"github.com/creachadair/jdoc/lexer"
	"go4.org/mem"
)

// ErrorKind classifies the syntax errors reported by the parser.
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	NoBeginningObject ErrorKind = iota + 1 // the input contains no object
	UnclosedObject                         // "}" with no open object
	UnclosedArray                          // input ended before "]"
	UnexpectedEnd                          // input ended inside a construct
	UnexpectedToken                        // a token not permitted by the grammar
	UnknownToken                           // text the lexer could not classify
)

var errorKindStr = [...]string{
	0:                 "syntax error",
	NoBeginningObject: "no beginning object",
	UnclosedObject:    "unclosed object",
	UnclosedArray:     "unclosed array",
	UnexpectedEnd:     "unexpected end of input",
	UnexpectedToken:   "unexpected token",
	UnknownToken:      "unknown token",
}

func (k ErrorKind) String() string {
	if int(k) >= len(errorKindStr) {
		return errorKindStr[0]
	}
	return errorKindStr[k]
}

// Sentinel errors, one per ErrorKind. A *SyntaxError matches the sentinel of
// its kind under errors.Is.
var (
	ErrNoBeginningObject = &SyntaxError{Kind: NoBeginningObject}
	ErrUnclosedObject    = &SyntaxError{Kind: UnclosedObject}
	ErrUnclosedArray     = &SyntaxError{Kind: UnclosedArray}
	ErrUnexpectedEnd     = &SyntaxError{Kind: UnexpectedEnd}
	ErrUnexpectedToken   = &SyntaxError{Kind: UnexpectedToken}
	ErrUnknownToken      = &SyntaxError{Kind: UnknownToken}
)

// SyntaxError is the concrete type of errors reported for malformed input.
type SyntaxError struct {
	Kind     ErrorKind
	Pos      lexer.Pos     // where the error was detected
	Location lexer.LineCol // the line and column of Pos

	// For UnexpectedToken and UnknownToken, the offending token.
	Found lexer.Token

	// The grammar classes that would have been accepted, if the error arose
	// from the grammar's expectations.
	Expected ExpectSet

	// The lexical tokens that would have been accepted, if the error arose
	// inside a construct that requires a specific token, such as ":" after a
	// member name or "," between array elements.
	Want []lexer.Kind
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("at %s (offset %d): %s", e.Location, e.Pos, e.message())
}

// Is reports whether target is a *SyntaxError of the same kind as e.
func (e *SyntaxError) Is(target error) bool {
	t, ok := target.(*SyntaxError)
	return ok && t.Kind == e.Kind
}

func (e *SyntaxError) message() string {
	switch e.Kind {
	case NoBeginningObject:
		return "input does not begin with an object"
	case UnclosedObject:
		return `"}" without an open object`
	case UnclosedArray:
		return "array is not closed"
	case UnexpectedEnd:
		if exp := e.expectLabel(); exp != "" {
			return "unexpected end of input, expected " + exp
		}
		return "unexpected end of input"
	case UnexpectedToken:
		return fmt.Sprintf("unexpected %v, expected %s", e.Found, e.expectLabel())
	case UnknownToken:
		return e.Found.String()
	}
	return e.Kind.String()
}

func (e *SyntaxError) expectLabel() string {
	if len(e.Want) != 0 {
		ss := make([]string, len(e.Want))
		for i, k := range e.Want {
			ss[i] = k.String()
		}
		return joinOr(ss)
	}
	return e.Expected.String()
}

// joinOr makes a human-readable list of alternatives.
func joinOr(ss []string) string {
	switch len(ss) {
	case 0:
		return ""
	case 1:
		return ss[0]
	}
	last := len(ss) - 1
	return strings.Join(ss[:last], ", ") + " or " + ss[last]
}

// detach returns a copy of tok whose text does not share storage with the
// source, so that an error does not pin or alias the caller's input.
func detach(tok lexer.Token) lexer.Token {
	tok.Text = mem.S(tok.Text.StringCopy())
	return tok
}

// InternalError reports that the parser reached a state its grammar makes
// unreachable. It indicates a defect in the parser, not a problem with the
// input, and is never reported as a *SyntaxError.
type InternalError struct {
	Pos     lexer.Pos
	Message string
}

// Error satisfies the error interface.
func (e *InternalError) Error() string {
	return fmt.Sprintf("jdoc: internal error at offset %d: %s", e.Pos, e.Message)
}

// internalf constructs an *InternalError. Callers panic with the result to
// abort the parse; the public entry points recover it and return it.
func internalf(pos lexer.Pos, msg string, args ...any) *InternalError {
	return &InternalError{Pos: pos, Message: fmt.Sprintf(msg, args...)}
}

func recoverInternal(errp *error) {
	if v := recover(); v != nil {
		ie, ok := v.(*InternalError)
		if !ok {
			panic(v)
		}
		*errp = ie
	}
}
