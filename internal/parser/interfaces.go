package parser

import "io"

// Parser decodes a TVmaze list response into display-ready values
type Parser[T any] interface {
	Parse(body io.Reader) ([]T, error)
}

// SingleResultParser decodes a TVmaze response holding a single object
type SingleResultParser[T any] interface {
	ParseOne(body io.Reader) (T, error)
}
