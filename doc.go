// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jdoc implements a parser for JSON documents.
//
// A document is a single JSON object. Parsing proceeds in three stages, each
// pulling from the one before it:
//
//   - The lexer (package lexer) splits the source text into tokens. It never
//     fails; text it cannot classify becomes an Unknown token.
//   - A Validator checks the tokens against the grammar and reports a
//     sequence of partial tokens: object boundaries, member names, and member
//     values.
//   - Build assembles the partial tokens into a tree of *Object values.
//
// Most callers only need Parse:
//
//	obj, err := jdoc.Parse(`{"name": "value", "tags": ["a", "b"]}`)
//	if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//	for _, m := range obj.Members {
//	   log.Printf("%s = %v", m.Name, m.Value)
//	}
//
// # Values
//
// The members of an Object are kept in source order, and repeated names are
// kept as separate members. Member values have one of these concrete types:
//
//	JSON           | Go type
//	-------------- | ---------------------------------------
//	string         | String (content as written, see below)
//	integer        | Integer
//	fraction/exp   | Float
//	true, false    | Bool
//	null           | Null
//	array          | Array (scalar elements only)
//	object         | *Object
//
// String content is taken verbatim up to the next quotation mark; escape
// sequences are not interpreted by the parser. Use String.Unescape to decode
// them. As a consequence, an escaped quotation mark ends a string.
//
// # Errors
//
// Malformed input is reported as a *SyntaxError whose Kind classifies the
// problem and whose Pos gives the 1-based byte offset where it was detected.
// Use errors.Is with the Err* sentinels to test for a particular kind:
//
//	if errors.Is(err, jdoc.ErrUnexpectedToken) {
//	   // ...
//	}
//
// A state that the grammar makes unreachable is reported as an
// *InternalError, which indicates a defect in the parser rather than in the
// input.
package jdoc
