package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/expr-lang/expr"
	"github.com/rlch/docsql"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func typesCommand() *cli.Command {
	return &cli.Command{
		Name:  "types",
		Usage: "List the supported type catalog",
		Flags: []cli.Flag{
			modeFlag(),
			&cli.IntFlag{
				Name:  "sql-type",
				Usage: "only list types with this relational type code (0 = all)",
			},
			&cli.StringFlag{
				Name:  "where",
				Usage: "filter rows with an expression over the catalog columns, e.g. 'SEARCHABLE > 0'",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "output rows as JSON",
			},
		},
		Action: runTypes,
	}
}

func runTypes(ctx context.Context, cmd *cli.Command) error {
	cfg := loadConfig()

	mode, err := resolveMode(cmd, cfg)
	if err != nil {
		return err
	}

	code := docsql.SQLType(cmd.Int("sql-type"))
	records := docsql.TypeInfoRecords(code, mode)

	logger.Debug("listing type catalog",
		zap.Stringer("mode", mode),
		zap.Int("sql-type", int(code)),
		zap.Int("rows", len(records)))

	if where := cmd.String("where"); where != "" {
		records, err = filterRecords(records, where)
		if err != nil {
			return err
		}
	}

	if cmd.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(records)
	}

	fmt.Print(docsql.FormatTypeInfo(records, styledOutput(cmd)))

	return nil
}

// filterRecords keeps the rows for which the expression evaluates to true.
// Column names are the expression's variables; NULL columns are nil.
func filterRecords(records []map[string]any, where string) ([]map[string]any, error) {
	if len(records) == 0 {
		return records, nil
	}

	program, err := expr.Compile(where, expr.Env(records[0]), expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("compiling --where expression: %w", err)
	}

	out := make([]map[string]any, 0, len(records))

	for _, rec := range records {
		result, err := expr.Run(program, rec)
		if err != nil {
			return nil, fmt.Errorf("evaluating --where expression: %w", err)
		}

		if keep, ok := result.(bool); ok && keep {
			out = append(out, rec)
		}
	}

	return out, nil
}
