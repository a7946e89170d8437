// Package parser builds executable directives from lexer tokens.
package parser

import (
	"fmt"
	"strings"
)

// Command is a program and its arguments, ready to be passed to exec.
type Command struct {
	Name string
	Args []string
}

// Argv returns the argument vector for exec: the program name followed by
// its arguments.
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// DirectiveKind identifies what a Directive asks for.
type DirectiveKind int

const (
	RunCommand DirectiveKind = iota
	Terminate
)

func (k DirectiveKind) String() string {
	switch k {
	case RunCommand:
		return "RunCommand"
	case Terminate:
		return "Terminate"
	default:
		return fmt.Sprintf("DirectiveKind(%d)", int(k))
	}
}

// Directive is one parsed statement.
//
// For Terminate, Command.Args holds any words that followed the quit word.
// They're kept for logging and otherwise ignored.
type Directive struct {
	Kind    DirectiveKind
	Command Command
}

// NewRunCommand creates a RunCommand directive.
func NewRunCommand(name string, args ...string) Directive {
	return Directive{Kind: RunCommand, Command: Command{Name: name, Args: args}}
}

// NewTerminate creates a Terminate directive.
func NewTerminate(args ...string) Directive {
	return Directive{Kind: Terminate, Command: Command{Args: args}}
}

func (d Directive) String() string {
	switch d.Kind {
	case RunCommand:
		return fmt.Sprintf("%s%q", d.Kind, d.Command.Argv())
	default:
		return d.Kind.String()
	}
}
