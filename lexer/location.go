// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package lexer

import (
	"fmt"

	"go4.org/mem"
)

// A Pos is the 1-based byte offset of the first byte of a token in the source
// text. The zero Pos is not a valid position.
type Pos int

// Offset reports the 0-based byte offset corresponding to p.
func (p Pos) Offset() int { return int(p) - 1 }

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// Locate reports the line and column of pos within src. Positions past the
// end of src are clamped to the end of the text.
func Locate(src mem.RO, pos Pos) LineCol {
	off := min(max(pos.Offset(), 0), src.Len())
	lc := LineCol{Line: 1}
	for {
		i := mem.IndexByte(src.SliceTo(off), '\n')
		if i < 0 {
			break
		}
		lc.Line++
		src = src.SliceFrom(i + 1)
		off -= i + 1
	}
	lc.Column = off
	return lc
}
