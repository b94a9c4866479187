// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"io"

	"github.com/creachadair/jdoc/lexer"
	"github.com/tailscale/hujson"
	"go4.org/mem"
)

// A PartialSource delivers the partial tokens of a document in order.
// Next reports io.EOF when the document is complete.
// A *Validator is a PartialSource.
type PartialSource interface {
	Next() (Partial, error)
}

// Parse parses the JSON document in src and returns its root object.
// In case of a syntax error, the returned error has type *SyntaxError.
func Parse(src string) (*Object, error) { return Build(NewValidator(mem.S(src))) }

// ParseBytes parses the JSON document in src and returns its root object.
// The result does not retain src.
func ParseBytes(src []byte) (*Object, error) { return Build(NewValidator(mem.B(src))) }

// MustParse parses src as for Parse, but panics if parsing fails.
func MustParse(src string) *Object {
	obj, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return obj
}

// ParseHuJSON parses a document that may use the HuJSON extensions of JSON
// (comments and trailing commas). Comments and trailing commas are replaced
// with spaces before parsing, so positions in errors refer to src as given.
// If src is not valid HuJSON it is parsed as is, so that any error is
// reported in the terms of the JSON grammar.
func ParseHuJSON(src []byte) (*Object, error) {
	std, err := hujson.Standardize(src)
	if err != nil {
		std = src
	}
	return ParseBytes(std)
}

// Build assembles the document tree from the partial tokens delivered by src.
// The first token must open the root object. If src is exhausted before it
// delivers anything, Build reports a NoBeginningObject error.
//
// Build does not recur on nested objects; nesting depth is limited only by
// available memory.
func Build(src PartialSource) (_ *Object, err error) {
	defer recoverInternal(&err)

	first, err := src.Next()
	if err == io.EOF {
		return nil, &SyntaxError{
			Kind:     NoBeginningObject,
			Pos:      1,
			Location: lexer.LineCol{Line: 1},
		}
	} else if err != nil {
		return nil, err
	} else if first.Kind != BeginObject {
		panic(internalf(first.Pos, "document begins with %v", first))
	}

	root, err := parseObject(src)
	if err != nil {
		return nil, err
	}

	// The grammar permits nothing after the root object, so the source must
	// either be exhausted or report an error.
	if p, err := src.Next(); err == nil {
		panic(internalf(p.Pos, "%v after the root object", p))
	} else if err != io.EOF {
		return nil, err
	}
	return root, nil
}

// parseObject consumes the members of an object and the objects nested in
// it, through the closing brace of the object.
// Precondition: the BeginObject token has been consumed.
func parseObject(src PartialSource) (*Object, error) {
	root := new(Object)
	stk := []*Object{root}
	for {
		cur := stk[len(stk)-1]

		// Each member starts with a name, or else the object is complete.
		p, err := pull(src)
		if err != nil {
			return nil, err
		}
		switch p.Kind {
		case EndObject:
			stk = stk[:len(stk)-1]
			if len(stk) == 0 {
				return root, nil
			}
			continue
		case MemberName:
			// OK, handled below
		default:
			panic(internalf(p.Pos, "%v where a member name was expected", p))
		}

		name := p.Name
		p, err = pull(src)
		if err != nil {
			return nil, err
		}
		switch p.Kind {
		case MemberValue:
			cur.Members = append(cur.Members, Member{Name: name, Value: p.Value})
		case ArrayValue:
			cur.Members = append(cur.Members, Member{Name: name, Value: p.Array})
		case BeginObject:
			// Add the nested object to its parent eagerly, so that it is in
			// place when its own members are filled in.
			obj := new(Object)
			cur.Members = append(cur.Members, Member{Name: name, Value: obj})
			stk = append(stk, obj)
		default:
			panic(internalf(p.Pos, "%v where a member value was expected", p))
		}
	}
}

// pull reports the next partial token from src. The grammar does not permit
// the source to end inside an object, so io.EOF here is an internal error.
func pull(src PartialSource) (Partial, error) {
	p, err := src.Next()
	if err == io.EOF {
		panic(internalf(0, "source ended inside an object"))
	}
	return p, err
}
