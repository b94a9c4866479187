// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jdoc_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/jdoc"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

// obj constructs an object from alternating names and values.
func obj(kvs ...any) *jdoc.Object {
	o := new(jdoc.Object)
	for i := 0; i+1 < len(kvs); i += 2 {
		o.Members = append(o.Members, jdoc.Member{Name: kvs[i].(string), Value: kvs[i+1].(jdoc.Value)})
	}
	return o
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *jdoc.Object
	}{
		{"Empty", "{}", obj()},
		{"Spaces", " \r\n\t{ \n } \n", obj()},
		{"Single", `{"name": 50.7}`, obj("name", jdoc.Float(50.7))},
		{"Scalars", `{"s": "str", "i": -15, "f": 2.5e2, "t": true, "f2": false, "n": null}`, obj(
			"s", jdoc.String("str"),
			"i", jdoc.Integer(-15),
			"f", jdoc.Float(250),
			"t", jdoc.Bool(true),
			"f2", jdoc.Bool(false),
			"n", jdoc.Null{},
		)},
		{"Arrays", `{"a": [], "b": ["x", 1, 1.5, true, null]}`, obj(
			"a", jdoc.Array{},
			"b", jdoc.Array{jdoc.String("x"), jdoc.Integer(1), jdoc.Float(1.5), jdoc.Bool(true), jdoc.Null{}},
		)},
		{"Nested", `{"object": {"data": "data", "object2": {}}, "after": 1}`, obj(
			"object", obj("data", jdoc.String("data"), "object2", obj()),
			"after", jdoc.Integer(1),
		)},
		{"DeepTail", `{"a": {"b": {"c": {}}}}`, obj(
			"a", obj("b", obj("c", obj())),
		)},
		{"Siblings", `{"x": {}, "y": {"z": [1]}, "w": {}}`, obj(
			"x", obj(), "y", obj("z", jdoc.Array{jdoc.Integer(1)}), "w", obj(),
		)},
		{"Duplicates", `{"k": 1, "k": "two", "j": 3, "k": {}}`, obj(
			"k", jdoc.Integer(1), "k", jdoc.String("two"), "j", jdoc.Integer(3), "k", obj(),
		)},
		{"Verbatim", `{"path": "C:\\dir\/x", "tab": "a\tb"}`, obj(
			"path", jdoc.String(`C:\\dir\/x`), "tab", jdoc.String(`a\tb`),
		)},
		{"Punctuation", `{"{": "[1, 2]", ":": ","}`, obj(
			"{", jdoc.String("[1, 2]"), ":", jdoc.String(","),
		)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := jdoc.Parse(test.input)
			if err != nil {
				t.Fatalf("Parse %#q: unexpected error: %v", test.input, err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Parse %#q: (-want, +got)\n%s", test.input, diff)
			}

			// ParseBytes agrees with Parse.
			bgot, err := jdoc.ParseBytes([]byte(test.input))
			if err != nil {
				t.Fatalf("ParseBytes %#q: unexpected error: %v", test.input, err)
			}
			if diff := cmp.Diff(got, bgot); diff != "" {
				t.Errorf("ParseBytes %#q: (-Parse, +ParseBytes)\n%s", test.input, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
		pos   int
		loc   string
	}{
		{"", jdoc.ErrNoBeginningObject, 1, "1:0"},
		{" \n ", jdoc.ErrNoBeginningObject, 1, "1:0"},
		{"[1, 2]", jdoc.ErrUnexpectedToken, 1, "1:0"},
		{`"top"`, jdoc.ErrUnexpectedToken, 2, "1:1"},
		{"{\n  \"a\": 1\n}}", jdoc.ErrUnclosedObject, 13, "3:1"},
		{`{"a": 1} trailing`, jdoc.ErrUnknownToken, 10, "1:9"},
		{`{"a": 1} {}`, jdoc.ErrUnexpectedToken, 10, "1:9"},
		{"{\n  \"list\": [1, 2\n}", jdoc.ErrUnexpectedToken, 19, "3:0"},
		{`{"list": [1, 2`, jdoc.ErrUnclosedArray, 10, "1:9"},
		{"{\n  \"a\": {\n", jdoc.ErrUnexpectedEnd, 12, "3:0"},
		{`{"a": tru}`, jdoc.ErrUnknownToken, 7, "1:6"},
		{`{"a": 1.2.3}`, jdoc.ErrUnknownToken, 7, "1:6"},
		{`{"a": [{}]}`, jdoc.ErrUnexpectedToken, 8, "1:7"},
		{`{"a": ""}`, jdoc.ErrUnexpectedToken, 9, "1:8"},
	}
	for _, test := range tests {
		got, err := jdoc.Parse(test.input)
		if err == nil {
			t.Errorf("Parse %#q: got %+v, want error", test.input, got)
			continue
		} else if got != nil {
			t.Errorf("Parse %#q: got non-nil object %+v with error", test.input, got)
		}
		if !errors.Is(err, test.want) {
			t.Errorf("Parse %#q: got error %v, want %v", test.input, err, test.want)
		}
		var serr *jdoc.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Parse %#q: got %T, want *SyntaxError", test.input, err)
			continue
		}
		if int(serr.Pos) != test.pos {
			t.Errorf("Parse %#q: got pos %d, want %d", test.input, serr.Pos, test.pos)
		}
		if got := serr.Location.String(); got != test.loc {
			t.Errorf("Parse %#q: got location %s, want %s", test.input, got, test.loc)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", "at 1:0 (offset 1): input does not begin with an object"},
		{`{"a": 1}}`, `at 1:8 (offset 9): "}" without an open object`},
		{`{"a": [1`, "at 1:6 (offset 7): array is not closed"},
		{`{"a": 1`, `at 1:7 (offset 8): unexpected end of input, expected object end`},
		{`{"a"`, `at 1:4 (offset 5): unexpected end of input, expected ":"`},
		{`{"a": 1,}`, `at 1:8 (offset 9): unexpected "}", expected member name`},
		{`{"a" 1}`, `at 1:5 (offset 6): unexpected integer 1, expected ":"`},
		{`{"a": [1 2]}`, `at 1:9 (offset 10): unexpected integer 2, expected "," or "]"`},
		{`{"a": xyz}`, `at 1:6 (offset 7): unknown token "xyz"`},
	}
	for _, test := range tests {
		_, err := jdoc.Parse(test.input)
		if err == nil {
			t.Errorf("Parse %#q: got nil, want error", test.input)
		} else if got := err.Error(); got != test.want {
			t.Errorf("Parse %#q: wrong message\ngot:  %s\nwant: %s", test.input, got, test.want)
		}
	}
}

func TestMustParse(t *testing.T) {
	if got := jdoc.MustParse(`{"ok": true}`); got.Len() != 1 {
		t.Errorf("MustParse: got %d members, want 1", got.Len())
	}
	v := mtest.MustPanic(t, func() { jdoc.MustParse(`{"ok": true`) })
	if err, ok := v.(error); !ok || !errors.Is(err, jdoc.ErrUnexpectedEnd) {
		t.Errorf("MustParse panic: got %v, want %v", v, jdoc.ErrUnexpectedEnd)
	}
}

func TestParseHuJSON(t *testing.T) {
	const input = `{
  // A line comment
  "a": 1,
  /* A block comment */
  "b": ["x", "y",],
  "c": {"d": null,},
}`
	got, err := jdoc.ParseHuJSON([]byte(input))
	if err != nil {
		t.Fatalf("ParseHuJSON: unexpected error: %v", err)
	}
	want := obj(
		"a", jdoc.Integer(1),
		"b", jdoc.Array{jdoc.String("x"), jdoc.String("y")},
		"c", obj("d", jdoc.Null{}),
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseHuJSON: (-want, +got)\n%s", diff)
	}

	// Positions refer to the input as written.
	_, err = jdoc.ParseHuJSON([]byte(`{/* c */ "a": [[1]], /* d */}`))
	var serr *jdoc.SyntaxError
	if !errors.As(err, &serr) || serr.Kind != jdoc.UnexpectedToken {
		t.Fatalf("ParseHuJSON: got %v, want %v", err, jdoc.ErrUnexpectedToken)
	}
	if serr.Pos != 16 {
		t.Errorf("ParseHuJSON: got pos %d, want 16", serr.Pos)
	}
}

func TestParseBytesCopies(t *testing.T) {
	buf := []byte(`{"name": "value"}`)
	o, err := jdoc.ParseBytes(buf)
	if err != nil {
		t.Fatalf("ParseBytes: unexpected error: %v", err)
	}
	for i := range buf {
		buf[i] = 'X'
	}
	if diff := cmp.Diff(obj("name", jdoc.String("value")), o); diff != "" {
		t.Errorf("After modifying input: (-want, +got)\n%s", diff)
	}
}

func TestDeepNesting(t *testing.T) {
	const depth = 100000
	input := strings.Repeat(`{"a": `, depth) + "{}" + strings.Repeat("}", depth)
	o, err := jdoc.Parse(input)
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	n := 0
	for o.Len() != 0 {
		next, ok := o.Members[0].Value.(*jdoc.Object)
		if !ok {
			t.Fatalf("Level %d: got %T, want *Object", n, o.Members[0].Value)
		}
		o = next
		n++
	}
	if n != depth {
		t.Errorf("Got depth %d, want %d", n, depth)
	}
}

// fakeSource delivers a fixed sequence of partial tokens, then io.EOF.
type fakeSource []jdoc.Partial

func (f *fakeSource) Next() (jdoc.Partial, error) {
	if len(*f) == 0 {
		return jdoc.Partial{}, io.EOF
	}
	p := (*f)[0]
	*f = (*f)[1:]
	return p, nil
}

func TestBuildInternalErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []jdoc.Partial
	}{
		{"NoBegin", []jdoc.Partial{name(1, "a")}},
		{"EndInside", []jdoc.Partial{begin(1), name(2, "a")}},
		{"EOFInside", []jdoc.Partial{begin(1)}},
		{"ValueNoName", []jdoc.Partial{begin(1), value(2, jdoc.Integer(1)), end(3)}},
		{"NameName", []jdoc.Partial{begin(1), name(2, "a"), name(3, "b"), end(4)}},
		{"AfterRoot", []jdoc.Partial{begin(1), end(2), begin(3)}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			src := fakeSource(test.input)
			got, err := jdoc.Build(&src)
			var ierr *jdoc.InternalError
			if !errors.As(err, &ierr) {
				t.Fatalf("Build: got %+v, %v; want *InternalError", got, err)
			}
			t.Logf("Got expected error: %v", err)
			if errors.Is(err, jdoc.ErrUnexpectedToken) {
				t.Errorf("Internal error %v matches a syntax error", err)
			}
		})
	}
}

func TestBuildSourceError(t *testing.T) {
	want := errors.New("source failed")
	src := errSource{begin(1), want}
	if got, err := jdoc.Build(&src); err != want {
		t.Errorf("Build: got %+v, %v; want %v", got, err, want)
	}
}

// errSource delivers one partial token and then fails.
type errSource struct {
	first jdoc.Partial
	err   error
}

func (e *errSource) Next() (jdoc.Partial, error) {
	if e.first.Kind != 0 {
		p := e.first
		e.first = jdoc.Partial{}
		return p, nil
	}
	return jdoc.Partial{}, e.err
}
