package script

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jpfielding/ime.go/pkg/ime"
	"github.com/jpfielding/ime.go/pkg/imageio"
)

// command describes one script keyword. Commands with an op transform
// tokens[src] into tokens[dst]; the rest supply exec.
type command struct {
	// tokens is the exact count including the keyword; load and save
	// accept more so paths may contain spaces
	tokens   int
	atLeast  bool
	src, dst int
	// split allows a trailing "split <percent>" preview suffix
	split bool
	op    func(args []string) (ime.Operation, error)
	exec  func(ctx context.Context, r *Runner, args []string) (string, error)
}

// fixed wraps an argument-free operation.
func fixed(op ime.Operation) func([]string) (ime.Operation, error) {
	return func([]string) (ime.Operation, error) { return op, nil }
}

// commands maps keywords to their layouts
var commands = map[string]*command{
	"load":                {tokens: 3, atLeast: true, exec: execLoad},
	"save":                {tokens: 3, atLeast: true, exec: execSave},
	"brighten":            {tokens: 4, src: 2, dst: 3, op: brightenOp},
	"blur":                {tokens: 3, src: 1, dst: 2, split: true, op: fixed(ime.OpBlur)},
	"sharpen":             {tokens: 3, src: 1, dst: 2, split: true, op: fixed(ime.OpSharpen)},
	"sepia":               {tokens: 3, src: 1, dst: 2, split: true, op: fixed(ime.OpSepia)},
	"value-component":     {tokens: 3, src: 1, dst: 2, split: true, op: fixed(ime.OpValue)},
	"luma-component":      {tokens: 3, src: 1, dst: 2, split: true, op: fixed(ime.OpLuma)},
	"intensity-component": {tokens: 3, src: 1, dst: 2, split: true, op: fixed(ime.OpIntensity)},
	"color-correct":       {tokens: 3, src: 1, dst: 2, split: true, op: fixed(ime.OpColorCorrect)},
	"levels-adjust":       {tokens: 6, src: 4, dst: 5, split: true, op: levelsOp},
	"horizontal-flip":     {tokens: 3, src: 1, dst: 2, op: fixed(ime.OpFlipHorizontal)},
	"vertical-flip":       {tokens: 3, src: 1, dst: 2, op: fixed(ime.OpFlipVertical)},
	"red-component":       {tokens: 3, src: 1, dst: 2, op: fixed(ime.OpRed)},
	"green-component":     {tokens: 3, src: 1, dst: 2, op: fixed(ime.OpGreen)},
	"blue-component":      {tokens: 3, src: 1, dst: 2, op: fixed(ime.OpBlue)},
	"compress":            {tokens: 4, src: 2, dst: 3, op: compressOp},
	"histogram":           {tokens: 3, exec: execHistogram},
	"rgb-split":           {tokens: 5, exec: execSplit},
	"rgb-combine":         {tokens: 5, exec: execCombine},
	"resize":              {tokens: 5, exec: execResize},
}

// run reaches back into the table through Runner.RunFile
func init() {
	commands["run"] = &command{tokens: 2, exec: execRun}
}

func brightenOp(args []string) (ime.Operation, error) {
	c, err := strconv.ParseFloat(args[1], 32)
	if err != nil || math.IsNaN(c) || math.IsInf(c, 0) {
		return nil, fmt.Errorf("%w: brighten expects a number, got %q", ErrArgument, args[1])
	}
	return ime.OpBrighten(float32(c)), nil
}

func levelsOp(args []string) (ime.Operation, error) {
	v, err := ints(args[1:4])
	if err != nil {
		return nil, fmt.Errorf("levels-adjust expects 3 numbers: %w", err)
	}
	return ime.OpLevels(v[0], v[1], v[2]), nil
}

func compressOp(args []string) (ime.Operation, error) {
	v, err := ints(args[1:2])
	if err != nil {
		return nil, fmt.Errorf("compress expects a percentage: %w", err)
	}
	return ime.OpCompress(v[0]), nil
}

func ints(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrArgument, a)
		}
		out[i] = v
	}
	return out, nil
}

// pathAndName splits "<keyword> <path...> <name>".
func pathAndName(args []string) (string, string) {
	return strings.Join(args[1:len(args)-1], " "), args[len(args)-1]
}

func execLoad(ctx context.Context, r *Runner, args []string) (string, error) {
	path, name := pathAndName(args)
	pixels, err := imageio.Load(r.resolve(path))
	if err != nil {
		return "", err
	}
	if err := r.Store.Load(name, pixels); err != nil {
		return "", err
	}
	return fmt.Sprintf("loaded %s as %s", path, name), nil
}

func execSave(ctx context.Context, r *Runner, args []string) (string, error) {
	path, name := pathAndName(args)
	pixels, err := r.Store.Pixels(name)
	if err != nil {
		return "", err
	}
	if err := imageio.Save(r.resolve(path), pixels); err != nil {
		return "", err
	}
	return fmt.Sprintf("saved %s to %s", name, path), nil
}

func execRun(ctx context.Context, r *Runner, args []string) (string, error) {
	if err := r.RunFile(ctx, r.resolve(args[1])); err != nil {
		return "", err
	}
	return fmt.Sprintf("script %s complete", args[1]), nil
}

func execHistogram(ctx context.Context, r *Runner, args []string) (string, error) {
	if err := r.Store.Histogram(args[1], args[2], r.NewCanvas()); err != nil {
		return "", err
	}
	return completed(args[0], args[1], args[2]), nil
}

func execSplit(ctx context.Context, r *Runner, args []string) (string, error) {
	if err := r.Store.SplitChannels(args[1], args[2:]); err != nil {
		return "", err
	}
	return completed(args[0], args[1], fmt.Sprint(args[2:])), nil
}

func execCombine(ctx context.Context, r *Runner, args []string) (string, error) {
	if err := r.Store.Combine(args[2:], args[1]); err != nil {
		return "", err
	}
	return completed(args[0], fmt.Sprint(args[2:]), args[1]), nil
}

func execResize(ctx context.Context, r *Runner, args []string) (string, error) {
	v, err := ints(args[1:3])
	if err != nil {
		return "", fmt.Errorf("resize expects a width and height: %w", err)
	}
	pixels, err := r.Store.Pixels(args[3])
	if err != nil {
		return "", err
	}
	resized, err := imageio.Resize(pixels, v[0], v[1])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrArgument, err)
	}
	if err := r.Store.Load(args[4], resized); err != nil {
		return "", err
	}
	return completed(args[0], args[3], args[4]), nil
}

func completed(name, src, dst string) string {
	return fmt.Sprintf("%s operation completed successfully for %s & put in %s", name, src, dst)
}
