// Package shell runs external tools (flutter, license scanners) and waits
// for them to exit.
//
// Invocations are blocking and carry no internal timeout: a hung tool hangs
// the scan until the caller's context is cancelled. Nothing is retried.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/licscan/pkg/observability"
)

// Command describes one process invocation.
type Command struct {
	Name string   // executable, resolved through PATH
	Args []string // arguments, never interpreted by a shell
	Dir  string   // working directory; empty means the current directory
	Env  []string // extra KEY=VALUE pairs appended to the inherited environment
}

// String renders the command line for logs.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Runner executes commands.
type Runner interface {
	// Run executes cmd, waits for it to exit and returns its stdout.
	// A non-zero exit is returned as *ExitError.
	Run(ctx context.Context, cmd Command) ([]byte, error)
}

// ExitError reports a process that ran but exited non-zero.
type ExitError struct {
	Command Command
	Code    int
	Stderr  string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s: exit status %d", e.Command, e.Code)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + lastLine(s)
	}
	return msg
}

// Exec runs commands with os/exec.
type Exec struct {
	logger *log.Logger
}

// NewExec creates a Runner that logs each invocation at debug level.
// A nil logger discards output.
func NewExec(logger *log.Logger) *Exec {
	if logger == nil {
		logger = log.New(discard{})
	}
	return &Exec{logger: logger}
}

// Run implements Runner.
func (e *Exec) Run(ctx context.Context, cmd Command) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	e.logger.Debug("run", "cmd", cmd.String(), "dir", cmd.Dir)
	observability.Process().OnStart(ctx, cmd.Name, cmd.Args)
	start := time.Now()

	err := c.Run()
	code := -1
	if c.ProcessState != nil {
		code = c.ProcessState.ExitCode()
	}
	observability.Process().OnExit(ctx, cmd.Name, code, time.Since(start), err)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.Bytes(), &ExitError{Command: cmd, Code: exitErr.ExitCode(), Stderr: stderr.String()}
		}
		return nil, fmt.Errorf("%s: %w", cmd, err)
	}
	return stdout.Bytes(), nil
}

// LookPath reports the absolute path of an executable found on PATH.
func LookPath(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	p, err := exec.LookPath(name)
	return p, err == nil
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

var _ Runner = (*Exec)(nil)
