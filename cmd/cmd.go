package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rubiojr/sandscript/ast"
	"github.com/rubiojr/sandscript/cmd/dev"
	"github.com/rubiojr/sandscript/engine"
	"github.com/rubiojr/sandscript/interop"
	iomod "github.com/rubiojr/sandscript/modules/io"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// Execute runs the SandScript CLI with the given version string.
// Import modules via blank imports before calling this function
// so they register via init().
func Execute(version string) {
	if err := newApp(version).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(version string) *cli.Command {
	return &cli.Command{
		Name:                   "sandscript",
		Usage:                  "An embeddable, statically checked scripting language",
		Version:                version,
		UseShortOptionHandling: true,
		Writer:                 os.Stdout,
		ErrWriter:              os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file",
				Sources: cli.EnvVars("SANDSCRIPT_CONFIG"),
			},
			&cli.IntFlag{
				Name:    "max-passes",
				Usage:   "Upper bound on optimizer passes",
				Sources: cli.EnvVars("SANDSCRIPT_MAX_PASSES"),
			},
			&cli.BoolFlag{
				Name:    "keep-trivia",
				Usage:   "Keep comments and whitespace in the syntax tree",
				Sources: cli.EnvVars("SANDSCRIPT_KEEP_TRIVIA"),
			},
			&cli.BoolFlag{
				Name:  "no-optimize",
				Usage: "Skip the optimizer",
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Aliases: []string{"C"},
				Usage:   "Disable ANSI color output",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log pipeline activity to stderr",
			},
			&cli.BoolFlag{
				Name:  "timings",
				Usage: "Print per-stage timings after a run",
			},
		},
		// Allow `sandscript script.ss` as shorthand for `sandscript run script.ss`
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() > 0 && strings.HasSuffix(cmd.Args().First(), ".ss") {
				return runFile(cmd, cmd.Args().First())
			}
			return cli.DefaultShowRootCommandHelp(cmd)
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Check, optimize and run a .ss file",
				ArgsUsage: "<file.ss>",
				Action:    runAction,
			},
			{
				Name:      "check",
				Usage:     "Report diagnostics without running",
				ArgsUsage: "<file.ss> [file.ss...]",
				Action:    checkAction,
			},
			{
				Name:      "dump",
				Usage:     "Print the syntax tree of a .ss file",
				ArgsUsage: "<file.ss>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "stage",
						Usage: "Tree to print: parser, analyzer or optimizer",
						Value: "parser",
					},
				},
				Action: dumpAction,
			},
			{
				Name:      "doc",
				Usage:     "Show documentation for modules, native methods or script files",
				ArgsUsage: "[module | method | file.ss [symbol] | dir]",
				Action:    docAction,
			},
			{
				Name:      "watch",
				Usage:     "Run a .ss file and run it again whenever it changes",
				ArgsUsage: "<file.ss>",
				Action:    watchAction,
			},
			dev.Command(),
		},
	}
}

// config resolves the engine configuration: defaults, then the config
// file, then flags and their environment variables.
func config(cmd *cli.Command) (engine.Config, error) {
	cfg := engine.DefaultConfig()
	if path := cmd.String("config"); path != "" {
		var err error
		if cfg, err = engine.LoadConfig(path); err != nil {
			return cfg, err
		}
	}
	if cmd.IsSet("max-passes") {
		cfg.MaxOptimizerPasses = int(cmd.Int("max-passes"))
	}
	if cmd.IsSet("keep-trivia") {
		cfg.KeepTrivia = cmd.Bool("keep-trivia")
	}
	if cmd.Bool("no-optimize") {
		cfg.Optimize = false
	}
	return cfg, cfg.Validate()
}

func logger(cmd *cli.Command) *slog.Logger {
	if !cmd.Bool("verbose") {
		return nil
	}
	return slog.New(slog.NewTextHandler(stderr(cmd), &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// useColor reports whether diagnostics get ANSI colors: never with
// --no-color or NO_COLOR, otherwise only when stderr is a terminal.
func useColor(cmd *cli.Command) bool {
	if cmd.Bool("no-color") || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := stderr(cmd).(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func stdout(cmd *cli.Command) io.Writer { return cmd.Root().Writer }
func stderr(cmd *cli.Command) io.Writer { return cmd.Root().ErrWriter }

func newScript(cmd *cli.Command, kinds ...engine.Kind) (*engine.Script, error) {
	cfg, err := config(cmd)
	if err != nil {
		return nil, err
	}
	return engine.New(cfg, logger(cmd), kinds...), nil
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: sandscript run <file.ss>")
	}
	return runFile(cmd, cmd.Args().First())
}

func runFile(cmd *cli.Command, path string) error {
	s, err := newScript(cmd)
	if err != nil {
		return err
	}
	iomod.Stdout = stdout(cmd)
	res, err := s.RunFile(path)
	if err != nil {
		return report(cmd, path, err)
	}
	res.Diagnostics.Write(stderr(cmd), useColor(cmd))
	if cmd.Bool("timings") {
		fmt.Fprint(stderr(cmd), res.Diagnostics.Summary())
	}
	if res.Value != nil {
		fmt.Fprintln(stdout(cmd), interop.Format(res.Value))
	}
	return nil
}

// report prints the diagnostics of a failed run and condenses err.
func report(cmd *cli.Command, path string, err error) error {
	var rerr *engine.RunError
	if !errors.As(err, &rerr) {
		return err
	}
	rerr.Diagnostics.Write(stderr(cmd), useColor(cmd))
	if cmd.Bool("timings") {
		fmt.Fprint(stderr(cmd), rerr.Diagnostics.Summary())
	}
	n := len(rerr.Diagnostics.Errors())
	return fmt.Errorf("%s: %s failed with %d error(s)", path, rerr.Stage, n)
}

func checkAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: sandscript check <file.ss> [file.ss...]")
	}
	failed := 0
	for _, path := range cmd.Args().Slice() {
		s, err := newScript(cmd, engine.KindAnalyzer)
		if err != nil {
			return err
		}
		res, err := s.RunFile(path)
		if err != nil {
			if err := report(cmd, path, err); err != nil {
				fmt.Fprintln(stderr(cmd), err)
			}
			failed++
			continue
		}
		res.Diagnostics.Write(stderr(cmd), useColor(cmd))
		fmt.Fprintf(stdout(cmd), "%s: ok\n", path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, cmd.NArg())
	}
	return nil
}

func dumpAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: sandscript dump [--stage parser|analyzer|optimizer] <file.ss>")
	}
	var kind engine.Kind
	switch stage := cmd.String("stage"); stage {
	case "parser":
		kind = engine.KindParser
	case "analyzer":
		kind = engine.KindAnalyzer
	case "optimizer":
		kind = engine.KindOptimizer
	default:
		return fmt.Errorf("unknown stage %q", stage)
	}
	s, err := newScript(cmd, kind)
	if err != nil {
		return err
	}
	path := cmd.Args().First()
	res, err := s.RunFile(path)
	if err != nil {
		var rerr *engine.RunError
		if errors.As(err, &rerr) && rerr.Program != nil {
			ast.Dump(stdout(cmd), rerr.Program)
		}
		return report(cmd, path, err)
	}
	ast.Dump(stdout(cmd), res.Program)
	return nil
}
