package db

import "strings"

// QueryType classifies a statement by its first keyword.
type QueryType int

const (
	QueryUnknown QueryType = iota
	QuerySelect
	QueryInsert
	QueryUpdate
	QueryDelete
)

// String returns the keyword for display.
func (t QueryType) String() string {
	switch t {
	case QuerySelect:
		return "SELECT"
	case QueryInsert:
		return "INSERT"
	case QueryUpdate:
		return "UPDATE"
	case QueryDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// ReturnsRows reports whether the statement kind produces a result set.
func (t QueryType) ReturnsRows() bool {
	return t == QuerySelect
}

// Classify inspects the first token of a statement. Leading whitespace
// is ignored; matching is case-insensitive. Anything other than the
// four core DML keywords classifies as QueryUnknown.
func Classify(sql string) QueryType {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return QueryUnknown
	}
	switch strings.ToUpper(fields[0]) {
	case "SELECT":
		return QuerySelect
	case "INSERT":
		return QueryInsert
	case "UPDATE":
		return QueryUpdate
	case "DELETE":
		return QueryDelete
	default:
		return QueryUnknown
	}
}
