package core

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/josephlewis42/sheller/core/config"
	"github.com/josephlewis42/sheller/core/executor"
	"github.com/josephlewis42/sheller/core/lexer"
	"github.com/josephlewis42/sheller/core/logger"
	"github.com/josephlewis42/sheller/core/parser"
	"golang.org/x/term"
)

// ExitCodeSyntaxError is the exit code for lines that fail to parse.
const ExitCodeSyntaxError = 2

type Shell struct {
	Config   *config.Configuration
	Executor *executor.Executor
	Events   logger.EventRecorder

	Stdin  *os.File
	Stdout io.Writer
	Stderr io.Writer

	errColor *color.Color
	lastExit int
}

// NewShell creates a shell that runs programs with the current process's
// standard streams.
func NewShell(cfg *config.Configuration, events logger.EventRecorder) *Shell {
	exec := executor.New()
	exec.PathEnv = cfg.SearchPath()

	if events == nil {
		events = logger.NopEventRecorder{}
	}

	s := &Shell{
		Config:   cfg,
		Executor: exec,
		Events:   events,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		errColor: color.New(color.FgRed, color.Bold),
	}

	switch cfg.Color {
	case config.ColorAlways:
		s.errColor.EnableColor()
	case config.ColorNever:
		s.errColor.DisableColor()
	default:
		if isTerminal(os.Stderr) {
			s.errColor.EnableColor()
		} else {
			s.errColor.DisableColor()
		}
	}

	return s
}

func isTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

func (s *Shell) lexerOptions() lexer.Options {
	return lexer.Options{QuoteAwareSeparators: s.Config.QuoteAwareSeparators}
}

// ProcessLine parses line and runs every command on it. The returned error
// is a *lexer.ParseError if the line was rejected, in which case nothing
// ran, or one or more *executor.ProcessError if a child couldn't be created
// or reaped. Errors never end the session.
func (s *Shell) ProcessLine(line string) (executor.SessionSignal, error) {
	outcome, err := s.Evaluate(line)
	if err != nil {
		return executor.Continue, err
	}
	return outcome.Signal, nil
}

// Evaluate is like ProcessLine but returns the full outcome, which is nil
// if the line didn't parse.
func (s *Shell) Evaluate(line string) (*executor.Outcome, error) {
	s.record(&logger.LineReceived{Line: line})

	directives, err := parser.ParseLine(line, s.lexerOptions())
	if err != nil {
		s.lastExit = ExitCodeSyntaxError
		s.record(&logger.ParseError{Line: line, Error: err.Error()})
		return nil, err
	}

	outcome, err := s.Executor.Execute(directives)
	for _, result := range outcome.Results {
		s.recordResult(result)
	}
	s.lastExit = outcome.ExitCode()

	if err != nil {
		s.record(&logger.ProcessError{Error: err.Error()})
	}
	return outcome, err
}

func (s *Shell) recordResult(result executor.Result) {
	if result.LaunchErr != nil {
		s.record(&logger.LaunchFailure{
			Command: result.Command.Argv(),
			Error:   result.LaunchErr.Error(),
		})
		return
	}

	s.record(&logger.RunCommand{
		Command:      result.Command.Argv(),
		ResolvedPath: result.Path,
		Pid:          result.Pid,
		ExitCode:     result.ExitCode(),
		Signaled:     result.Signaled(),
	})
}

func (s *Shell) record(event logger.Event) {
	if err := s.Events.Record(event); err != nil {
		log.Printf("Error recording event: %v", err)
	}
}

// runLine evaluates the line and reports problems to Stderr.
func (s *Shell) runLine(line string) executor.SessionSignal {
	outcome, err := s.Evaluate(line)

	var parseErr *lexer.ParseError
	if errors.As(err, &parseErr) {
		s.errorf("syntax error: %v", parseErr)
		return executor.Continue
	}

	for _, result := range outcome.Results {
		switch {
		case errors.Is(result.LaunchErr, executor.ErrNotFound):
			s.errorf("%s: command not found", result.Command.Name)
		case result.LaunchErr != nil:
			s.errorf("%v", result.LaunchErr)
		case result.Signaled():
			s.errorf("%v", result)
		}
	}

	if err != nil {
		s.errorf("%v", err)
		return executor.Continue
	}
	return outcome.Signal
}

func (s *Shell) errorf(format string, a ...interface{}) {
	fmt.Fprintln(s.Stderr, s.errColor.Sprintf("sheller: "+format, a...))
}

// RunCommand runs a single line non-interactively and returns the exit code
// of its last command.
func (s *Shell) RunCommand(line string) int {
	s.record(&logger.SessionStart{Interactive: false})
	s.runLine(line)
	s.record(&logger.SessionEnd{Reason: "command"})
	return s.lastExit
}

// RunInteractive reads and runs lines until input ends or a line quits.
// It returns the exit code of the last command run.
func (s *Shell) RunInteractive() int {
	s.record(&logger.SessionStart{Interactive: true})

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.Config.Prompt,
		HistoryFile:     s.Config.HistoryPath(),
		HistoryLimit:    s.Config.HistoryLimit,
		InterruptPrompt: "^C",
		EOFPrompt:       lexer.QuitWord,
		Stdin:           readline.NewCancelableStdin(s.Stdin),
		Stdout:          s.Stdout,
		Stderr:          s.Stderr,
		FuncIsTerminal: func() bool {
			return isTerminal(s.Stdin)
		},
	})
	if err != nil {
		s.errorf("%v", err)
		s.record(&logger.SessionEnd{Reason: "error"})
		return 1
	}
	defer rl.Close()

	// Children share our process group, so a ^C while they run reaches us
	// too. Handling it (rather than ignoring it) lets children still get
	// the default disposition after exec.
	defer catchInterrupts()()

	for {
		line, err := rl.Readline()

		switch {
		case err == io.EOF:
			s.record(&logger.SessionEnd{Reason: "eof"})
			return s.lastExit

		case err == readline.ErrInterrupt:
			// Interrupt clears line.
			continue

		case err != nil:
			log.Printf("Error readline: %v", err)
			s.record(&logger.SessionEnd{Reason: "error"})
			return 1

		case strings.TrimSpace(line) == "":
			continue // empty line

		default:
			if s.runLine(line) == executor.Quit {
				s.record(&logger.SessionEnd{Reason: "quit"})
				return s.lastExit
			}
		}
	}
}

// catchInterrupts keeps SIGINT from ending the process until the returned
// func is called.
func catchInterrupts() (stop func()) {
	interrupts := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(interrupts, os.Interrupt)

	go func() {
		defer close(done)
		for range interrupts {
		}
	}()

	return func() {
		signal.Stop(interrupts)
		close(interrupts)
		<-done
	}
}
