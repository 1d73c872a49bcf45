package script

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/jpfielding/ime.go/pkg/canvas"
	"github.com/jpfielding/ime.go/pkg/ime"
	"github.com/jpfielding/ime.go/pkg/logging"
	"github.com/jpfielding/ime.go/pkg/store"
	"github.com/jpfielding/ime.go/pkg/util"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrTokenCount     = errors.New("invalid number of tokens")
	ErrArgument       = errors.New("invalid argument")
	ErrNesting        = errors.New("scripts nested too deep")
	// ErrExit is returned by Execute for the exit keyword.
	ErrExit = errors.New("exit")
)

type runKey struct{}

// MaxDepth bounds how deeply run commands may nest.
const MaxDepth = 16

// Runner executes script commands against a store, writing one status line
// per command to Out.
type Runner struct {
	Store *store.Store
	Out   io.Writer
	// NewCanvas supplies a drawing surface per histogram command.
	NewCanvas func() ime.Canvas
	// Strict stops a run at the first failing command.
	Strict bool
	// Dir resolves relative paths; empty means the working directory.
	Dir string

	log   *slog.Logger
	depth int
}

// NewRunner returns a non-strict runner over s rendering histograms on a
// canvas.Raster.
func NewRunner(s *store.Store, out io.Writer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if out == nil {
		out = io.Discard
	}
	return &Runner{
		Store:     s,
		Out:       out,
		NewCanvas: func() ime.Canvas { return canvas.New() },
		log:       logger,
	}
}

// Commands lists the supported keywords.
func Commands() []string {
	names := make([]string, 0, len(commands)+1)
	for name := range commands {
		names = append(names, name)
	}
	names = append(names, "exit")
	slices.Sort(names)
	return names
}

// Execute runs a single line and returns its status message. Blank lines
// and '#' comments do nothing; "exit" returns ErrExit.
func (r *Runner) Execute(ctx context.Context, line string) (string, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 || strings.HasPrefix(tokens[0], "#") {
		return "", nil
	}
	if tokens[0] == "exit" {
		return "", ErrExit
	}
	cmd, ok := commands[tokens[0]]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, tokens[0])
	}
	r.log.DebugContext(ctx, "executing", "command", tokens[0], "args", tokens[1:])
	if cmd.exec != nil {
		if len(tokens) != cmd.tokens && !(cmd.atLeast && len(tokens) > cmd.tokens) {
			return "", tokenError(tokens[0], cmd.tokens, len(tokens))
		}
		return cmd.exec(ctx, r, tokens)
	}

	switch {
	case len(tokens) == cmd.tokens:
		op, err := cmd.op(tokens)
		if err != nil {
			return "", err
		}
		if err := r.Store.Apply(tokens[cmd.src], tokens[cmd.dst], op); err != nil {
			return "", err
		}
		return completed(tokens[0], tokens[cmd.src], tokens[cmd.dst]), nil
	case cmd.split && len(tokens) == cmd.tokens+2 && tokens[cmd.tokens] == "split":
		percent, err := strconv.Atoi(tokens[cmd.tokens+1])
		if err != nil {
			return "", fmt.Errorf("%w: split expects a percentage, got %q", ErrArgument, tokens[cmd.tokens+1])
		}
		op, err := cmd.op(tokens)
		if err != nil {
			return "", err
		}
		if err := r.Store.Preview(tokens[cmd.src], tokens[cmd.dst], op, percent); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s previewed on %d%% of %s & put in %s", tokens[0], percent, tokens[cmd.src], tokens[cmd.dst]), nil
	}
	return "", tokenError(tokens[0], cmd.tokens, len(tokens))
}

func tokenError(name string, want, got int) error {
	return fmt.Errorf("%w: %s takes %d arguments, got %d", ErrTokenCount, name, want-1, got-1)
}

// Run executes in line by line. It stops at the end of input, at an exit
// line, when ctx is cancelled or (when Strict) at the first failure.
// Failures are reported to Out and logged; only the strict failure is
// returned. Nested runs share the run id of the outermost one.
func (r *Runner) Run(ctx context.Context, in io.Reader) error {
	if _, ok := ctx.Value(runKey{}).(string); !ok {
		id := util.NewRunID()
		ctx = logging.AppendCtx(context.WithValue(ctx, runKey{}, id), slog.String("run", id))
	}
	sc := bufio.NewScanner(in)
	for n := 1; sc.Scan(); n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg, err := r.Execute(ctx, sc.Text())
		switch {
		case errors.Is(err, ErrExit):
			return nil
		case err != nil:
			r.log.WarnContext(ctx, "command failed", "line", n, "error", err)
			fmt.Fprintln(r.Out, err)
			if r.Strict {
				return fmt.Errorf("line %d: %w", n, err)
			}
		case msg != "":
			r.log.InfoContext(ctx, msg, "line", n)
			fmt.Fprintln(r.Out, msg)
		}
	}
	return sc.Err()
}

// RunFile runs the script at path. Scripts may run other scripts up to
// MaxDepth levels deep. Log records of the run carry the content
// fingerprint of every script on the nesting path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	if r.depth >= MaxDepth {
		return fmt.Errorf("%w: %s", ErrNesting, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: script %s: %v", ErrArgument, path, err)
	}
	r.depth++
	defer func() { r.depth-- }()
	ctx = logging.AppendCtx(ctx, slog.String("script", Fingerprint(data)))
	r.log.InfoContext(ctx, "running script", "path", path, "depth", r.depth)
	return r.Run(ctx, bytes.NewReader(data))
}

// Fingerprint identifies script content; identical scripts share one.
func Fingerprint(data []byte) string {
	return util.HashUUID(string(data))
}

func (r *Runner) resolve(path string) string {
	if r.Dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.Dir, path)
}
