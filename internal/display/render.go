package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
)

// RenderTable writes t as aligned text columns.
func RenderTable(w io.Writer, t Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, strings.Join(t.Columns, "\t")); err != nil {
		return err
	}
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = FormatValue(v)
		}
		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func RenderMetrics(w io.Writer, metrics []Metric) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, m := range metrics {
		if _, err := fmt.Fprintf(tw, "%s\t%d\n", m.Label, m.Value); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func RenderNotice(w io.Writer, n *Notice) error {
	if n == nil {
		return nil
	}
	_, err := fmt.Fprintf(w, "[%s] %s\n", strings.ToUpper(string(n.Level)), n.Message)
	return err
}

// FormatValue renders a single cell. nil renders as an empty string.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}
