package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rlch/docsql"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// Describe command errors.
var (
	ErrNoSchemaFile = errors.New("no schema file given (pass a path or set schema in .docsql.yaml)")
	ErrNoCollection = errors.New("no collection name given (use --collection or .docsql.yaml)")
)

func describeCommand() *cli.Command {
	return &cli.Command{
		Name:      "describe",
		Usage:     "Resolve a collection schema into its column list",
		ArgsUsage: "[schema file]",
		Flags: []cli.Flag{
			modeFlag(),
			&cli.StringFlag{
				Name:    "collection",
				Aliases: []string{"c"},
				Usage:   "collection name reported as the column owner",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "output columns as JSON",
			},
		},
		Action: runDescribe,
	}
}

func runDescribe(ctx context.Context, cmd *cli.Command) error {
	cfg := loadConfig()

	mode, err := resolveMode(cmd, cfg)
	if err != nil {
		return err
	}

	path := cmd.Args().First()
	if path == "" && cfg != nil {
		path = cfg.Schema
	}
	if path == "" {
		return ErrNoSchemaFile
	}

	collection := cmd.String("collection")
	if collection == "" && cfg != nil {
		collection = cfg.Collection
	}
	if collection == "" {
		return ErrNoCollection
	}

	logger.Debug("describing collection",
		zap.String("collection", collection),
		zap.String("schema", path),
		zap.Stringer("mode", mode))

	doc, err := loadSchemaDocument(path)
	if err != nil {
		return err
	}

	schema, err := docsql.Simplify(doc)
	if err != nil {
		return err
	}

	columns, err := docsql.ResolveCollection(collection, schema, mode)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(columns)
	}

	fmt.Print(docsql.FormatColumns(columns, styledOutput(cmd)))

	return nil
}
