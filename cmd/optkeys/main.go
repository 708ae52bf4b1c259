// Package main provides the optkeys binary entry point.
// Optkeys is the reference engine for the optional-object-keys proposal:
// it evaluates scripts that use the `{ key?: value }` syntax and transpiles
// them to plain JavaScript.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Diokuz/optional-keys-in-objects/pkg/driver"
)

const (
	Version = "0.1.0"
	appName = "optkeys"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Optional object keys reference engine",
		Long: `Optkeys implements the optional-object-keys proposal:

    { key?: value }     property omitted when value is undefined
    { [expr]?: value }  computed variant, key side effects always run
    { key? }            shorthand variant

It can run scripts directly or transpile them to plain JavaScript.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(runCmd())
	cmd.AddCommand(evalCmd())
	cmd.AddCommand(transpileCmd())
	cmd.AddCommand(replCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	})

	return cmd
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <script>",
		Short: "Evaluate a script file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session := driver.New()
			v, errs := session.RunFile(args[0])
			if ok := session.DisplayResult(os.Stdout, v, errs); !ok {
				os.Exit(70) // internal software error
			}
			return nil
		},
	}
}

func evalCmd() *cobra.Command {
	var expr string
	cmd := &cobra.Command{
		Use:   "eval -e <expression>",
		Short: "Evaluate an expression and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			if expr == "" && len(args) > 0 {
				expr = strings.Join(args, " ")
			}
			if expr == "" {
				return fmt.Errorf("no expression given")
			}
			session := driver.New()
			v, errs := session.RunString(expr)
			if ok := session.DisplayResult(os.Stdout, v, errs); !ok {
				os.Exit(70)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&expr, "expression", "e", "", "Expression to evaluate")
	return cmd
}

func transpileCmd() *cobra.Command {
	var (
		outPath    string
		configPath string
		watch      bool
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "transpile [patterns...]",
		Short: "Lower optional-key syntax to plain JavaScript",
		Long: `Transpile rewrites object literals using the optional-key marker into
plain JavaScript that preserves evaluation order. Inputs may be paths or
globs ('src/**/*.js'). With --watch, inputs are re-transpiled on change.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := driver.LoadOptions(configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}

			files, err := driver.ExpandPatterns(args, opts)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no input files matched")
			}
			if outPath != "" && len(files) > 1 {
				return fmt.Errorf("-o only applies to a single input file")
			}

			for _, file := range files {
				written, err := driver.TranspileFile(file, outPath, opts)
				if err != nil {
					return err
				}
				fmt.Printf("%s -> %s\n", file, written)
			}

			if !watch {
				return nil
			}

			logger := newLogger(logLevel)
			roots := watchRoots(files)
			watcher, err := driver.NewWatcher(driver.WatcherConfig{
				Roots:         roots,
				Options:       opts,
				DebounceDelay: 100 * time.Millisecond,
				Logger:        logger,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watcher.Start(ctx)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (single input only)")
	cmd.Flags().StringVar(&configPath, "config", "optkeys.yaml", "Config file path (YAML)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-transpile inputs on change")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	return cmd
}

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepl(os.Stdin, os.Stdout)
			return nil
		},
	}
}

func runRepl(in io.Reader, out io.Writer) {
	fmt.Fprintf(out, "%s %s (type .exit to quit)\n", appName, Version)

	session := driver.New()
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == ".exit" || line == ".quit" {
			return
		}

		v, errs := session.RunString(line)
		session.DisplayResult(out, v, errs)
	}
}

func newLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// watchRoots reduces the matched files to the set of parent directories to
// watch recursively.
func watchRoots(files []string) []string {
	seen := make(map[string]bool)
	var roots []string
	for _, f := range files {
		dir := filepath.Dir(f)
		if !seen[dir] {
			seen[dir] = true
			roots = append(roots, dir)
		}
	}
	return roots
}
