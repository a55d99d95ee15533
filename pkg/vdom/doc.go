// Package vdom provides the node model used to build blog pages.
//
// A page is a tree of VNode values: elements, text, fragments and raw
// HTML. Trees are built with variadic factory functions and written out
// by the render package:
//
//	Main(Class("post"),
//	    H1(Text("Hello")),
//	    Raw(fragment),
//	)
//
// Text nodes are escaped on output. Raw nodes are written verbatim and
// are how page fragments loaded from disk or S3 pass through the root
// layout unchanged.
package vdom
