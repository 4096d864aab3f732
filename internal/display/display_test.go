package display

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestZeroTableMarshalsEmptyArrays(t *testing.T) {
	data, err := json.Marshal(Table{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"columns":[],"rows":[]}` {
		t.Errorf("got %s", data)
	}
}

func TestTableColumn(t *testing.T) {
	tbl := NewTable("violation", "total_stops")
	if tbl.Column("total_stops") != 1 {
		t.Errorf("Column(total_stops) = %d", tbl.Column("total_stops"))
	}
	if tbl.Column("missing") != -1 {
		t.Errorf("Column(missing) = %d", tbl.Column("missing"))
	}
	if !tbl.Empty() {
		t.Error("new table should be empty")
	}
}

func TestRenderTable(t *testing.T) {
	tbl := NewTable("violation", "avg_stop_minutes")
	tbl.Append("Speeding", 7.5)
	tbl.Append("DUI", nil)

	var buf bytes.Buffer
	if err := RenderTable(&buf, tbl); err != nil {
		t.Fatalf("RenderTable: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("want 3 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "Speeding") || !strings.HasSuffix(lines[1], "7.5") {
		t.Errorf("unexpected row: %q", lines[1])
	}
}

func TestRenderNotice(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderNotice(&buf, Warning("No result found for the selected query")); err != nil {
		t.Fatalf("RenderNotice: %v", err)
	}
	if buf.String() != "[WARNING] No result found for the selected query\n" {
		t.Errorf("got %q", buf.String())
	}
	buf.Reset()
	if err := RenderNotice(&buf, nil); err != nil || buf.Len() != 0 {
		t.Errorf("nil notice should render nothing")
	}
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2023, 1, 1, 14, 30, 0, 0, time.UTC)
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"KA01", "KA01"},
		{int64(12), "12"},
		{33.33, "33.33"},
		{true, "true"},
		{ts, "2023-01-01 14:30:00"},
		{[]byte("raw"), "raw"},
	}
	for _, c := range cases {
		if got := FormatValue(c.in); got != c.want {
			t.Errorf("FormatValue(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
