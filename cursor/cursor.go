// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over the tree of a JSON document.
package cursor

import (
	"fmt"

	"github.com/creachadair/jdoc"
)

// Path follows path from v, with elements as documented for Cursor.Down,
// and returns the value it reaches as a T.
func Path[T jdoc.Value](v jdoc.Value, path ...any) (T, error) {
	var zero T
	c := New(v).Down(path...)
	if c.err != nil {
		return zero, c.err
	}
	if out, ok := c.Value().(T); ok {
		return out, nil
	}
	return zero, fmt.Errorf("value has type %T, not %T", c.Value(), zero)
}

// A Cursor tracks a position in the tree of a document, together with the
// values passed through to reach it.
type Cursor struct {
	trail []jdoc.Value // trail[0] is the origin
	err   error
}

// New constructs a Cursor positioned at origin.
func New(origin jdoc.Value) *Cursor { return &Cursor{trail: []jdoc.Value{origin}} }

// Origin returns the value c was constructed with.
func (c *Cursor) Origin() jdoc.Value { return c.trail[0] }

// AtOrigin reports whether c is positioned at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.trail) == 1 }

// Value returns the value at the current position of c.
func (c *Cursor) Value() jdoc.Value { return c.trail[len(c.trail)-1] }

// Path returns the values from the origin to the current position, inclusive.
// The caller may modify the returned slice.
func (c *Cursor) Path() []jdoc.Value { return append([]jdoc.Value(nil), c.trail...) }

// Err reports the error from the most recent call to Down, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves c to the value it came from. At the origin Up has no effect.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if !c.AtOrigin() {
		c.trail = c.trail[:len(c.trail)-1]
	}
	return c
}

// Reset returns c to its origin and clears its error.
func (c *Cursor) Reset() {
	c.trail = c.trail[:1]
	c.err = nil
}

// Down moves c along path from its current position. It returns c to permit
// chaining. Path elements have the following meanings:
//
//   - A string names a member of an object. When the name is repeated, the
//     first member with that name is chosen.
//   - An int selects an element of an array or a member of an object by its
//     offset. Negative offsets count backward from the end, so -1 is the last.
//   - A func(jdoc.Value) (jdoc.Value, error) is called with the current value
//     and its result becomes the next position.
//
// If a step fails, c stays at the last value reached and the error is
// available from Err.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil
	for _, elt := range path {
		next, err := step(c.Value(), elt)
		if err != nil {
			c.err = err
			break
		}
		c.trail = append(c.trail, next)
	}
	return c
}

// step resolves a single path element against v.
func step(v jdoc.Value, elt any) (jdoc.Value, error) {
	switch key := elt.(type) {
	case string:
		obj, ok := v.(*jdoc.Object)
		if !ok {
			return nil, fmt.Errorf("cannot select member %q of %T", key, v)
		} else if m := obj.Find(key); m != nil {
			return m.Value, nil
		}
		return nil, fmt.Errorf("member %q not found", key)

	case int:
		switch t := v.(type) {
		case jdoc.Array:
			if i, ok := offset(key, len(t)); ok {
				return t[i], nil
			}
			return nil, fmt.Errorf("array index %d out of range (n=%d)", key, len(t))
		case *jdoc.Object:
			if i, ok := offset(key, t.Len()); ok {
				return t.Members[i].Value, nil
			}
			return nil, fmt.Errorf("member index %d out of range (n=%d)", key, t.Len())
		}
		return nil, fmt.Errorf("cannot index %T", v)

	case func(jdoc.Value) (jdoc.Value, error):
		return key(v)
	}
	return nil, fmt.Errorf("invalid path element %T", elt)
}

// offset converts i to an index into a sequence of length n, counting from
// the end if i < 0, and reports whether the result is in range.
func offset(i, n int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, 0 <= i && i < n
}
