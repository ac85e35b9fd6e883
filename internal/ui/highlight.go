package ui

import (
	"bytes"

	"github.com/alecthomas/chroma/v2/quick"
)

// HighlightSQL applies syntax highlighting to SQL using Chroma with the
// PostgreSQL lexer and ANSI terminal output. The original string is
// returned if highlighting fails.
func HighlightSQL(sql string) string {
	if sql == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, sql, "postgresql", "terminal256", "monokai"); err != nil {
		return sql
	}
	return buf.String()
}
