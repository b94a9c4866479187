// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jdoc_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/creachadair/jdoc"
	"github.com/creachadair/jdoc/cursor"
	"go4.org/mem"
)

func ExampleParse() {
	obj, err := jdoc.Parse(`{
  "name": "jdoc",
  "stars": 12,
  "tags": ["json", "parser"],
  "owner": {"login": "creachadair"}
}`)
	if err != nil {
		log.Fatalf("Parse: %v", err)
	}
	for _, m := range obj.Members {
		fmt.Printf("%s: %T\n", m.Name, m.Value)
	}
	// Output:
	// name: jdoc.String
	// stars: jdoc.Integer
	// tags: jdoc.Array
	// owner: *jdoc.Object
}

func ExampleParse_error() {
	_, err := jdoc.Parse(`{"name": "jdoc",}`)
	fmt.Println(err)
	fmt.Println(errors.Is(err, jdoc.ErrUnexpectedToken))
	// Output:
	// at 1:16 (offset 17): unexpected "}", expected member name
	// true
}

func ExampleValidator() {
	v := jdoc.NewValidator(mem.S("{\"a\": [1, 2],\n \"b\": {}}"))
	for p, err := range v.All() {
		if err != nil {
			log.Fatalf("Next: %v", err)
		}
		fmt.Println(p.Pos, p)
	}
	// Output:
	// 1 begin object
	// 3 member name a
	// 7 array [1, 2]
	// 17 member name b
	// 21 begin object
	// 22 end object
	// 23 end object
}

func ExampleObject_Duplicates() {
	obj := jdoc.MustParse(`{"x": 1, "y": 2, "x": 3}`)
	fmt.Println(obj.Keys())
	fmt.Println(obj.Duplicates())
	fmt.Println(obj.Find("x").Value)
	// Output:
	// [x y x]
	// [x]
	// 1
}

func Example_cursor() {
	obj := jdoc.MustParse(`{"owner": {"login": "creachadair", "repos": ["jdoc", "mds"]}}`)
	s, err := cursor.Path[jdoc.String](obj, "owner", "repos", -1)
	if err != nil {
		log.Fatalf("Path: %v", err)
	}
	fmt.Println(s)
	// Output:
	// mds
}
