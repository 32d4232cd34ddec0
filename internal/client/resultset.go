package client

import (
	"encoding/json"
	"fmt"
)

// stats.nba.com responses carry tabular data as parallel header and
// rowSet arrays rather than keyed objects.
type statsResponse struct {
	ResultSets []struct {
		Name    string   `json:"name"`
		Headers []string `json:"headers"`
		RowSet  [][]any  `json:"rowSet"`
	} `json:"resultSets"`
}

// Table is one decoded result set with column lookup by header name
type Table struct {
	index map[string]int
	rows  [][]any
}

func decodeResultSet(body []byte, name string) (*Table, error) {
	var resp statsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats response: %w", err)
	}
	if len(resp.ResultSets) == 0 {
		return nil, fmt.Errorf("stats response has no result sets")
	}

	// Named lookup first, fall back to the first set (endpoints that
	// return a single table are inconsistent about naming it)
	set := resp.ResultSets[0]
	for _, rs := range resp.ResultSets {
		if rs.Name == name {
			set = rs
			break
		}
	}

	index := make(map[string]int, len(set.Headers))
	for i, h := range set.Headers {
		index[h] = i
	}
	return &Table{index: index, rows: set.RowSet}, nil
}

// NewTable builds a Table directly from headers and rows. Fixtures in
// tests use this instead of full JSON payloads.
func NewTable(headers []string, rows [][]any) *Table {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[h] = i
	}
	return &Table{index: index, rows: rows}
}

// Len returns the number of rows in the table
func (t *Table) Len() int { return len(t.rows) }

// Row returns the i'th row
func (t *Table) Row(i int) Row { return Row{table: t, cells: t.rows[i]} }

// Row is one row of a Table, with cell access by header name
type Row struct {
	table *Table
	cells []any
}

// Get returns the raw cell for the named column, nil when the column is
// missing from this response or the row is short.
func (r Row) Get(col string) any {
	i, ok := r.table.index[col]
	if !ok || i >= len(r.cells) {
		return nil
	}
	return r.cells[i]
}

// Float returns the named cell as *float64 rounded to decimals
func (r Row) Float(col string, decimals int) *float64 { return Float(r.Get(col), decimals) }

// Int returns the named cell as *int
func (r Row) Int(col string) *int { return Int(r.Get(col)) }

// Str returns the named cell as *string
func (r Row) Str(col string) *string { return Str(r.Get(col)) }
