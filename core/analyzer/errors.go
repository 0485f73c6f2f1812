package analyzer

import (
	"errors"
	"fmt"

	"github.com/tristendillon/scout/core/ast"
	"github.com/tristendillon/scout/core/extractor"
)

type FailureKind string

const (
	ReadFailure    FailureKind = "read"
	ParseFailure   FailureKind = "parse"
	InvalidInput   FailureKind = "invalidInput"
	EmitFailure    FailureKind = "emit"
	UnknownFailure FailureKind = "unknown"
)

// FileError is the failure of one file. The file is left out of the
// results and the batch goes on.
type FileError struct {
	File string
	Kind FailureKind
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.File, e.Kind, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// classify picks the failure kind of an analysis error.
func classify(err error) FailureKind {
	var perr *ast.ParseError
	var ierr *extractor.InvalidInputError
	switch {
	case errors.As(err, &perr):
		return ParseFailure
	case errors.As(err, &ierr):
		return InvalidInput
	case errors.Is(err, errRead):
		return ReadFailure
	}
	return UnknownFailure
}

var errRead = errors.New("cannot read file")
