// Command c0ls is a driver over the analysis core: it builds a project
// from files on disk and answers diagnostics, hover, definition, and
// format queries against it from the terminal, the way the teacher's
// own cobra-based command trees wrap their core packages.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/azdavis/c0ls/internal/analysis"
	"github.com/azdavis/c0ls/internal/cli"
	"github.com/azdavis/c0ls/internal/config"
)

// Exit codes, per the driver's contract with scripts invoking it: 0 is a
// clean build, 1 is a build that produced at least one error diagnostic,
// 2 is a driver-level failure (bad flags, I/O, cache), 3 is a panic
// that run recovered.
const (
	exitOK          = 0
	exitDiagnostics = 1
	exitDriverError = 2
	exitPanic       = 3
)

var (
	jsonOut bool
	verbose bool
	cacheDB string
)

func main() {
	os.Exit(run())
}

func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "c0ls: internal error: %v\n", r)
			code = exitPanic
		}
	}()

	root := &cobra.Command{
		Use:   "c0ls",
		Short: "Analysis core for a small C-like teaching language",
		Long:  "c0ls builds a project of .c0/.h0 source files and answers diagnostics, hover, definition, and formatting queries against it.",
	}
	root.PersistentFlags().BoolVar(&jsonOut, "json", false, "emit machine-readable JSON output")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print progress to stderr")
	root.PersistentFlags().StringVar(&cacheDB, "cache", "", "build-stats cache DSN (overrides C0LS_CACHE_DIR)")

	exitCode := exitOK
	root.AddCommand(
		buildCmd(&exitCode),
		diagnosticsCmd(&exitCode),
		hoverCmd(&exitCode),
		defCmd(&exitCode),
		formatCmd(&exitCode),
		statsCmd(&exitCode),
	)

	if err := root.Execute(); err != nil {
		return exitDriverError
	}
	return exitCode
}

func loadConfig() config.Config {
	cfg := *config.LoadConfig()
	if cacheDB != "" {
		cfg.CacheDir = cacheDB
	}
	return cfg
}

func fail(exitCode *int, code int, err error) {
	fmt.Fprintln(os.Stderr, "c0ls:", err)
	*exitCode = code
}

func buildCmd(exitCode *int) *cobra.Command {
	return &cobra.Command{
		Use:   "build <pattern>...",
		Short: "Build a project and report how many files and diagnostics it produced",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			log := cli.Logger{Verbose: verbose}
			log.Printf("discovering files matching %v", args)

			started := time.Now()
			db, paths, err := cli.BuildProject(args, cfg)
			if err != nil {
				fail(exitCode, exitDriverError, err)
				return
			}
			elapsed := time.Since(started)
			log.Printf("built %d files in %s", len(paths), elapsed)

			var messages []string
			hasError := false
			for _, path := range paths {
				diags, ok := db.AllDiagnostics(path)
				if !ok {
					continue
				}
				for _, d := range diags {
					messages = append(messages, d.Message)
					if d.Severity == analysis.SeverityError {
						hasError = true
					}
				}
			}
			if cfg.CacheDir != "" {
				if err := cli.RecordBuild(cfg.CacheDir, started, elapsed, len(paths), messages); err != nil {
					log.Warnf("%v", err)
				}
			}
			fmt.Printf("built %d files, %d diagnostics, in %s\n", len(paths), len(messages), elapsed)
			if hasError {
				*exitCode = exitDiagnostics
			}
		},
	}
}

func diagnosticsCmd(exitCode *int) *cobra.Command {
	return &cobra.Command{
		Use:   "diagnostics <file>",
		Short: "Print diagnostics for one file, built together with its project",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			file := args[0]
			started := time.Now()
			db, paths, err := cli.BuildContaining(file, cfg)
			if err != nil {
				fail(exitCode, exitDriverError, err)
				return
			}
			diags, ok := db.AllDiagnostics(file)
			if !ok {
				fail(exitCode, exitDriverError, cli.CLIError{Code: cli.ErrNoSuchFile, Message: file + " was not part of the built project"})
				return
			}
			hasError, out := cli.PrintDiagnostics(file, diags, jsonOut)
			fmt.Print(out)
			if hasError {
				*exitCode = exitDiagnostics
			}
			if cfg.CacheDir != "" {
				messages := make([]string, len(diags))
				for i, d := range diags {
					messages[i] = d.Message
				}
				if err := cli.RecordBuild(cfg.CacheDir, started, time.Since(started), len(paths), messages); err != nil {
					cli.Logger{Verbose: verbose}.Warnf("%v", err)
				}
			}
		},
	}
}

func hoverCmd(exitCode *int) *cobra.Command {
	return &cobra.Command{
		Use:   "hover <file> <line>:<col>",
		Short: "Print hover information at a position",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			file := args[0]
			pos, err := cli.ParsePosition(args[1])
			if err != nil {
				fail(exitCode, exitDriverError, err)
				return
			}
			db, _, err := cli.BuildContaining(file, cfg)
			if err != nil {
				fail(exitCode, exitDriverError, err)
				return
			}
			text, ok := db.Hover(file, pos)
			if !ok {
				fail(exitCode, exitDiagnostics, cli.CLIError{Code: cli.ErrIO, Message: "nothing to show at " + args[1]})
				return
			}
			fmt.Print(cli.PrintHover(text, jsonOut))
		},
	}
}

func defCmd(exitCode *int) *cobra.Command {
	return &cobra.Command{
		Use:   "def <file> <line>:<col>",
		Short: "Print the definition location of the identifier at a position",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			file := args[0]
			pos, err := cli.ParsePosition(args[1])
			if err != nil {
				fail(exitCode, exitDriverError, err)
				return
			}
			db, _, err := cli.BuildContaining(file, cfg)
			if err != nil {
				fail(exitCode, exitDriverError, err)
				return
			}
			defURI, r, ok := db.GoToDef(file, pos)
			if !ok {
				fail(exitCode, exitDiagnostics, cli.CLIError{Code: cli.ErrIO, Message: "no definition found at " + args[1]})
				return
			}
			fmt.Print(cli.PrintDef(defURI, r, jsonOut))
		},
	}
}

func formatCmd(exitCode *int) *cobra.Command {
	var diff, write bool
	cmd := &cobra.Command{
		Use:   "format <file>",
		Short: "Reformat a file's whitespace",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			res, err := cli.FormatFile(args[0])
			if err != nil {
				fail(exitCode, exitDriverError, err)
				return
			}
			switch {
			case write:
				if res.Changed {
					if err := res.Write(); err != nil {
						fail(exitCode, exitDriverError, err)
					}
				}
			case diff:
				out, err := res.Diff()
				if err != nil {
					fail(exitCode, exitDriverError, err)
					return
				}
				fmt.Print(out)
			default:
				fmt.Print(res.Formatted)
			}
		},
	}
	cmd.Flags().BoolVar(&diff, "diff", false, "print a unified diff instead of the formatted source")
	cmd.Flags().BoolVar(&write, "write", false, "rewrite the file in place")
	return cmd
}

func statsCmd(exitCode *int) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print recent build-stats cache entries",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			if cfg.CacheDir == "" {
				fail(exitCode, exitDriverError, cli.CLIError{Code: cli.ErrCache, Message: "no cache configured: set --cache or C0LS_CACHE_DIR"})
				return
			}
			out, err := cli.PrintStats(cfg.CacheDir, limit)
			if err != nil {
				fail(exitCode, exitDriverError, err)
				return
			}
			fmt.Print(out)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "how many recent runs to print")
	return cmd
}
