package docsql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Text rendering of column lists and catalog rows for the CLI.

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	nullStyle   = lipgloss.NewStyle().Faint(true)
)

// FormatColumns renders a resolved column list as an aligned text table.
// When styled is false the output is plain text, suitable for pipes.
func FormatColumns(columns []ColumnMetadata, styled bool) string {
	header := []string{"ORDINAL", "TABLE", "COLUMN", "TYPE", "DATA_TYPE", "NULLABLE", "PRECISION", "SCALE"}
	rows := make([][]string, len(columns))

	for i, col := range columns {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			col.TableName,
			col.Name,
			col.TypeName,
			strconv.Itoa(int(col.SQLType)),
			col.Nullability.String(),
			formatOptInt(col.Precision),
			formatOptInt(col.Scale),
		}
	}

	return renderTable(header, rows, styled)
}

// FormatTypeInfo renders type-catalog rows using the protocol's column
// names, in table order.
func FormatTypeInfo(records []map[string]any, styled bool) string {
	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(TypeInfoColumnNames))
		for j, name := range TypeInfoColumnNames {
			row[j] = formatValue(rec[name])
		}

		rows[i] = row
	}

	return renderTable(TypeInfoColumnNames, rows, styled)
}

func formatOptInt(v *int) string {
	if v == nil {
		return "NULL"
	}

	return strconv.Itoa(*v)
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}

	return fmt.Sprintf("%v", v)
}

func renderTable(header []string, rows [][]string, styled bool) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder

	writeRow := func(cells []string, isHeader bool) {
		for i, cell := range cells {
			padded := cell + strings.Repeat(" ", widths[i]-len(cell))
			if styled {
				switch {
				case isHeader:
					padded = headerStyle.Render(padded)
				case cell == "NULL":
					padded = nullStyle.Render(padded)
				}
			}

			b.WriteString(padded)
			if i < len(cells)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteByte('\n')
	}

	writeRow(header, true)

	for _, row := range rows {
		writeRow(row, false)
	}

	return b.String()
}
