package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jpfielding/ime.go/pkg/logging"
	"github.com/spf13/cobra"
)

func NewRoot(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "imectl",
		Short: "a CLI to load, transform and save images",
		Long:  "imectl runs image manipulation scripts against an in-memory set of named images",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFile, _ := cmd.Flags().GetString("log-file")
			logJSON, _ := cmd.Flags().GetBool("log-json")

			var w io.Writer = os.Stderr
			if logFile != "" {
				maxMB, _ := cmd.Flags().GetInt("log-max-mb")
				w = logging.RotatingFile(logFile, maxMB)
			}

			var level slog.Level
			err := level.UnmarshalText([]byte(strings.ToUpper(logLevel)))
			if err != nil {
				level = slog.LevelInfo
			}
			slog.SetDefault(logging.Logger(w, logJSON, level))
			if err != nil {
				slog.WarnContext(ctx, "Invalid log level, defaulting to INFO", "level", logLevel, "error", err)
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			printCommandTree(cmd, 0)
		},
	}
	cmd.AddCommand(
		NewVersionCmd(ctx, gitsha),
		NewRunCmd(ctx),
		NewShellCmd(ctx),
		NewExecCmd(ctx),
		NewInfoCmd(ctx),
	)
	pf := cmd.PersistentFlags()
	pf.String("log-level", "WARN", "Log level (DEBUG, INFO, WARN, ERROR)")
	pf.String("log-file", "", "Write logs to this file, rotated by size, instead of stderr")
	pf.Int("log-max-mb", 10, "Rotate the log file after this many megabytes")
	pf.Bool("log-json", false, "Emit JSON log records")
	return cmd
}

func printCommandTree(cmd *cobra.Command, indent int) {
	fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("\t", indent), cmd.Use+":", cmd.Short)
	for _, subCmd := range cmd.Commands() {
		printCommandTree(subCmd, indent+1)
	}
}

func NewVersionCmd(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "git sha for this build",
		Long:  "git sha for this build",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), gitsha)
		},
	}
	return cmd
}
