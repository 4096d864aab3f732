// Package display models what the dashboard shows: tables, metric cards
// and notices. Both the HTTP handlers and the CLI render these values.
package display

import "encoding/json"

// Table is a labeled tabular result. A zero Table has no columns and no rows.
type Table struct {
	Columns []string
	Rows    [][]any
}

// NewTable returns an empty table with the given columns.
func NewTable(columns ...string) Table {
	return Table{Columns: columns, Rows: [][]any{}}
}

// Append adds a row. Values must line up with Columns.
func (t *Table) Append(values ...any) {
	t.Rows = append(t.Rows, values)
}

func (t Table) Len() int {
	return len(t.Rows)
}

func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Column returns the index of the named column or -1.
func (t Table) Column(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func (t Table) MarshalJSON() ([]byte, error) {
	columns := t.Columns
	if columns == nil {
		columns = []string{}
	}
	rows := t.Rows
	if rows == nil {
		rows = [][]any{}
	}
	return json.Marshal(struct {
		Columns []string `json:"columns"`
		Rows    [][]any  `json:"rows"`
	}{columns, rows})
}

type Metric struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func Info(msg string) *Notice {
	return &Notice{Level: LevelInfo, Message: msg}
}

func Warning(msg string) *Notice {
	return &Notice{Level: LevelWarning, Message: msg}
}

func Error(msg string) *Notice {
	return &Notice{Level: LevelError, Message: msg}
}
