// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"strconv"

	"github.com/creachadair/jdoc/internal/escape"
	"github.com/creachadair/mds/mapset"
	"go4.org/mem"
)

// A Value is a JSON value in a document tree.
// The concrete type is one of String, Integer, Float, Bool, Null, Array, or
// *Object.
type Value interface{ isValue() }

// A Scalar is a Value with no nested structure.
// The concrete type is one of String, Integer, Float, Bool, or Null.
type Scalar interface {
	Value
	isScalar()
}

// A String is the content of a JSON string, without its quotation marks.
// Escape sequences are kept as written; see Unescape.
type String string

// An Integer is a number with no fraction or exponent.
type Integer int64

// A Float is a number with a fraction and/or exponent.
type Float float64

// A Bool is one of the constants true or false.
type Bool bool

// Null is the constant null.
type Null struct{}

// An Array is an ordered sequence of scalar values.
type Array []Scalar

func (String) isValue()  {}
func (Integer) isValue() {}
func (Float) isValue()   {}
func (Bool) isValue()    {}
func (Null) isValue()    {}
func (Array) isValue()   {}
func (*Object) isValue() {}

func (String) isScalar()  {}
func (Integer) isScalar() {}
func (Float) isScalar()   {}
func (Bool) isScalar()    {}
func (Null) isScalar()    {}

// Unescape decodes the JSON escape sequences in s. Invalid escapes are
// replaced by the Unicode replacement rune; an incomplete escape sequence is
// reported as an error.
func (s String) Unescape() (string, error) {
	dec, err := escape.Unescape(mem.S(string(s)))
	if err != nil {
		return "", err
	}
	return string(dec), nil
}

// An Object is an ordered collection of name/value members.
//
// Members are kept in the order they occur in the source. Names are not
// required to be unique; a name that occurs more than once has one member for
// each occurrence. Objects are populated by the parser and should be treated
// as read-only once returned.
type Object struct {
	Members []Member
}

// A Member is a single name/value pair belonging to an Object.
type Member struct {
	Name  string
	Value Value
}

// Len reports the number of members in o.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.Members)
}

// Find returns the first member of o with the given name, or nil.
func (o *Object) Find(name string) *Member {
	for i := 0; i < o.Len(); i++ {
		if o.Members[i].Name == name {
			return &o.Members[i]
		}
	}
	return nil
}

// Keys returns the names of the members of o in order, including repeats.
func (o *Object) Keys() []string {
	keys := make([]string, o.Len())
	for i := range keys {
		keys[i] = o.Members[i].Name
	}
	return keys
}

// Duplicates returns the names that occur more than once among the members
// of o, each reported once in order of its second occurrence.
func (o *Object) Duplicates() []string {
	var dups []string
	seen, rep := mapset.New[string](), mapset.New[string]()
	for _, key := range o.Keys() {
		if !seen.Has(key) {
			seen.Add(key)
		} else if !rep.Has(key) {
			rep.Add(key)
			dups = append(dups, key)
		}
	}
	return dups
}

// formatScalar renders s as it would appear in JSON source.
func formatScalar(s Scalar) string {
	switch t := s.(type) {
	case String:
		return `"` + string(t) + `"`
	case Integer:
		return strconv.FormatInt(int64(t), 10)
	case Float:
		return strconv.FormatFloat(float64(t), 'g', -1, 64)
	case Bool:
		return strconv.FormatBool(bool(t))
	case Null:
		return "null"
	}
	return "<invalid>"
}
