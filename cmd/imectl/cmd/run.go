package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jpfielding/ime.go/pkg/script"
	"github.com/jpfielding/ime.go/pkg/store"
	"github.com/spf13/cobra"
)

// newRunner builds a runner over a fresh store from the shared script flags.
func newRunner(cmd *cobra.Command) *script.Runner {
	r := script.NewRunner(store.New(slog.Default()), cmd.OutOrStdout(), slog.Default())
	r.Strict, _ = cmd.Flags().GetBool("strict")
	r.Dir, _ = cmd.Flags().GetString("dir")
	return r
}

func scriptFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.Bool("strict", false, "stop at the first failing command")
	pf.StringP("dir", "C", "", "resolve relative image and script paths against this directory")
}

// NewRunCmd runs a script file, or stdin when the path is "-"
func NewRunCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [file|-]",
		Short: "run an image script",
		Long:  "Runs one command per line from a script file or stdin. Lines starting with # are comments and exit stops the script.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := newRunner(cmd)
			if args[0] == "-" {
				return r.Run(ctx, cmd.InOrStdin())
			}
			if r.Dir == "" {
				r.Dir = filepath.Dir(args[0])
				return r.RunFile(ctx, args[0])
			}
			return r.RunFile(ctx, filepath.Join(r.Dir, args[0]))
		},
	}
	scriptFlags(cmd)
	return cmd
}

// NewExecCmd runs semicolon separated commands given as arguments
func NewExecCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <command> [; <command>...]",
		Short: "run commands given on the command line",
		Long:  `Runs commands separated by ";", e.g. imectl exec load in.ppm a ";" blur a b ";" save out.png b`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines := strings.ReplaceAll(strings.Join(args, " "), ";", "\n")
			return newRunner(cmd).Run(ctx, strings.NewReader(lines))
		},
	}
	scriptFlags(cmd)
	return cmd
}

// NewShellCmd reads commands interactively until exit or end of input
func NewShellCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "interactive image command prompt",
		Long:  "Reads commands from stdin one at a time; 'help' lists commands, 'names' lists loaded images and 'exit' quits.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return shell(ctx, newRunner(cmd), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	scriptFlags(cmd)
	return cmd
}

func shell(ctx context.Context, r *script.Runner, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "ime> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		switch line := strings.TrimSpace(sc.Text()); line {
		case "help":
			fmt.Fprintln(out, strings.Join(script.Commands(), " "))
		case "names":
			fmt.Fprintln(out, strings.Join(r.Store.Names(), " "))
		default:
			msg, err := r.Execute(ctx, line)
			switch {
			case errors.Is(err, script.ErrExit):
				return nil
			case err != nil:
				fmt.Fprintln(out, "error:", err)
				if r.Strict {
					return err
				}
			case msg != "":
				fmt.Fprintln(out, msg)
			}
		}
	}
}
