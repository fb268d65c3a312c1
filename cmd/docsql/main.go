package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rlch/docsql"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logger is configured in the root Before hook and shared by all commands.
var logger = zap.NewNop()

func main() {
	cmd := &cli.Command{
		Name:  "docsql",
		Usage: "Resolve document schemas into relational column metadata",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "plain",
				Usage: "disable styled output even on a terminal",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logger = newLogger(cmd.Bool("verbose"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			describeCommand(),
			resultsetCommand(),
			typesCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newLogger builds a console logger writing to stderr.
func newLogger(verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}

	return l
}

// styledOutput reports whether stdout should get styled tables.
func styledOutput(cmd *cli.Command) bool {
	if cmd.Bool("plain") {
		return false
	}

	return isatty.IsTerminal(os.Stdout.Fd())
}

// loadConfig loads the nearest config, tolerating its absence.
func loadConfig() *docsql.Config {
	wd, err := os.Getwd()
	if err != nil {
		return nil
	}

	cfg, err := docsql.LoadConfig(wd)
	if err != nil {
		logger.Debug("no config found", zap.Error(err))
		return nil
	}

	return cfg
}

// resolveMode picks the type mode from the flag, falling back to config.
func resolveMode(cmd *cli.Command, cfg *docsql.Config) (docsql.TypeMode, error) {
	if s := cmd.String("mode"); s != "" {
		return docsql.ParseTypeMode(s)
	}
	if cfg != nil {
		return cfg.TypeMode()
	}

	return docsql.ModeStrict, nil
}

// loadSchemaDocument reads and deserializes a schema document, choosing the
// codec from the file extension.
func loadSchemaDocument(path string) (*docsql.SchemaDocument, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return docsql.ParseSchemaDocumentYAML(data)
	default:
		return docsql.ParseSchemaDocument(data)
	}
}

// modeFlag is shared by every command that consults the type table.
func modeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "mode",
		Aliases: []string{"m"},
		Usage:   "type mode: strict or permissive",
		Sources: cli.EnvVars("DOCSQL_MODE"),
	}
}
