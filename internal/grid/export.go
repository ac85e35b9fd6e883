package grid

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/sift-db/sift/internal/logger"
)

// CopySelectedCell resolves the selected cell, writes it to the
// clipboard, and returns its value. Selecting the row-number
// pseudo-column copies the 1-based display row number. Returns false
// when nothing is selected.
func (m *Model) CopySelectedCell() (string, bool) {
	if m.selectedRow < 0 || m.selectedRow >= len(m.rows) {
		return "", false
	}

	var value string
	if m.selectedCol == 0 {
		value = strconv.Itoa(m.selectedRow + 1)
	} else {
		idx := m.selectedDataCol()
		if idx < 0 {
			return "", false
		}
		row := m.rows[m.selectedRow]
		if idx >= len(row) {
			logger.Warn("cell copy skipped: row narrower than headers",
				"row", m.selectedRow, "column", idx, "cells", len(row))
			return "", false
		}
		value = row[idx]
	}

	m.writeClipboard(value)
	return value, true
}

// CopySelectedRow exports the selected row as a JSON object, writes it
// to the clipboard, and returns it. Keys preserve header order. Cells
// equal to the null marker (case-insensitive) become JSON null. A row
// whose cell count differs from the header count aborts the export.
func (m *Model) CopySelectedRow() (string, bool) {
	if m.selectedRow < 0 || m.selectedRow >= len(m.rows) {
		return "", false
	}
	row := m.rows[m.selectedRow]
	if len(row) != len(m.columns) {
		logger.Warn("row copy skipped: cell count mismatch",
			"row", m.selectedRow, "cells", len(row), "columns", len(m.columns))
		return "", false
	}

	var sb strings.Builder
	sb.WriteByte('{')
	for i, col := range m.columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		key, err := json.Marshal(col)
		if err != nil {
			logger.Warn("row copy skipped: column name not encodable", "column", col, "error", err)
			return "", false
		}
		sb.Write(key)
		sb.WriteString(": ")
		if strings.EqualFold(row[i], "null") {
			sb.WriteString("null")
			continue
		}
		val, err := json.Marshal(row[i])
		if err != nil {
			logger.Warn("row copy skipped: cell not encodable", "column", col, "error", err)
			return "", false
		}
		sb.Write(val)
	}
	sb.WriteByte('}')

	out := sb.String()
	m.writeClipboard(out)
	return out, true
}

func (m *Model) writeClipboard(text string) {
	if m.clip == nil {
		return
	}
	if err := m.clip.Write(text); err != nil {
		logger.Warn("clipboard write failed", "error", err)
	}
}
