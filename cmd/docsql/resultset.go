package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rlch/docsql"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func resultsetCommand() *cli.Command {
	return &cli.Command{
		Name:      "resultset",
		Usage:     "Resolve a multi-table query-result schema into its column list",
		ArgsUsage: "[schema file]",
		Flags: []cli.Flag{
			modeFlag(),
			&cli.StringFlag{
				Name:    "order",
				Aliases: []string{"o"},
				Usage:   "authoritative column order as owner.field pairs, e.g. \"foo.b,foo.a,bar.c\"",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "output columns as JSON",
			},
		},
		Action: runResultset,
	}
}

func runResultset(ctx context.Context, cmd *cli.Command) error {
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

	order, err := parseOrder(cmd.String("order"))
	if err != nil {
		return err
	}

	logger.Debug("resolving result set",
		zap.String("schema", path),
		zap.Int("ordered", len(order)),
		zap.Stringer("mode", mode))

	doc, err := loadSchemaDocument(path)
	if err != nil {
		return err
	}

	schema, err := docsql.Simplify(doc)
	if err != nil {
		return err
	}

	columns, err := docsql.ResolveResultSet(schema, order, mode)
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

// parseOrder parses a comma-separated list of owner.field pairs. An empty
// string means no explicit order.
func parseOrder(s string) ([]docsql.ColumnRef, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	refs := make([]docsql.ColumnRef, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)

		owner, field, ok := strings.Cut(part, ".")
		if !ok || owner == "" || field == "" {
			return nil, fmt.Errorf("invalid column reference %q (want owner.field)", part)
		}

		refs = append(refs, docsql.ColumnRef{Owner: owner, Field: field})
	}

	return refs, nil
}
