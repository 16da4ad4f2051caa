// Package errors formats the interpreter's host errors with source
// context: a kind, a message, and the position that triggered it.
package errors

import (
	"fmt"
	"strings"

	"github.com/brewin-lang/brewin/internal/lexer"
)

// Kind is one of the three host error categories. Brewin exceptions
// (raise/try/catch) are a distinct, non-fatal control-flow status and
// are never represented as a Kind.
type Kind int

const (
	NameError Kind = iota
	TypeError
	FaultError
)

func (k Kind) String() string {
	switch k {
	case NameError:
		return "NAME_ERROR"
	case TypeError:
		return "TYPE_ERROR"
	case FaultError:
		return "FAULT_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// HostError is a terminal error: once raised, program execution stops.
type HostError struct {
	Kind    Kind
	Message string
	Pos     lexer.Position
	Source  string
	File    string
}

// New creates a HostError without source context (used when no position
// information is available, e.g. an exception still uncaught when main
// returns).
func New(kind Kind, message string) *HostError {
	return &HostError{Kind: kind, Message: message}
}

// NewAt creates a HostError carrying a source position for pretty
// printing.
func NewAt(kind Kind, message string, pos lexer.Position) *HostError {
	return &HostError{Kind: kind, Message: message, Pos: pos}
}

// Error implements the error interface.
func (e *HostError) Error() string {
	return e.Format()
}

// Format renders the error with a file:line:column header and, when
// source text is available, the offending line with a caret underneath.
func (e *HostError) Format() string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("%s in %s:%d:%d\n", e.Kind, e.File, e.Pos.Line, e.Pos.Column))
	} else if e.Pos.Line > 0 {
		sb.WriteString(fmt.Sprintf("%s at line %d:%d\n", e.Kind, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("%s\n", e.Kind))
	}

	if line := e.sourceLine(); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		col := e.Pos.Column
		if col < 1 {
			col = 1
		}
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+col-1))
		sb.WriteString("^\n")
	}

	sb.WriteString(e.Message)
	return sb.String()
}

func (e *HostError) sourceLine() string {
	if e.Source == "" || e.Pos.Line < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if e.Pos.Line > len(lines) {
		return ""
	}
	return lines[e.Pos.Line-1]
}
