// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/recoblend/internal/metrics"
)

// openDuckDB opens a private in-memory DuckDB instance.
// Extension autoloading is disabled; CSV reading is built in.
func openDuckDB(maxMemory string, threads int) (*sql.DB, error) {
	params := url.Values{}
	params.Set("autoinstall_known_extensions", "false")
	params.Set("autoload_known_extensions", "false")
	if maxMemory != "" {
		params.Set("max_memory", maxMemory)
	}
	if threads > 0 {
		params.Set("threads", strconv.Itoa(threads))
	}

	db, err := sql.Open("duckdb", ":memory:?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	return db, nil
}

// readCSV renders a read_csv_auto call over path with every column as VARCHAR.
// Casting happens in the surrounding query so bad values fail with a clear
// DuckDB conversion error instead of silently changing column types.
func readCSV(path string) string {
	return fmt.Sprintf("read_csv_auto(%s, header = true, all_varchar = true)", quoteLiteral(path))
}

// quoteLiteral renders s as a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// quoteIdent renders s as a SQL identifier.
func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// csvColumns returns the header of a CSV file as DuckDB sees it.
func csvColumns(ctx context.Context, conn *sql.Conn, path, table string) ([]string, error) {
	start := time.Now()
	rows, err := conn.QueryContext(ctx, "SELECT * FROM "+readCSV(path)+" LIMIT 0")
	metrics.RecordDBQuery("describe_csv", table, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("read %s header from %s: %w", table, path, err)
	}
	defer closeQuietly(rows)

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read %s columns: %w", table, err)
	}
	return cols, nil
}

// columnIndex maps lower-cased column names to their position.
func columnIndex(cols []string) map[string]int {
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		key := strings.ToLower(strings.TrimSpace(c))
		if _, exists := idx[key]; !exists {
			idx[key] = i
		}
	}
	return idx
}

// requireColumns checks that every name is present in idx.
func requireColumns(table string, idx map[string]int, names ...string) error {
	for _, n := range names {
		if _, ok := idx[n]; !ok {
			return fmt.Errorf("%w: %s has no %q column", ErrMissingColumn, table, n)
		}
	}
	return nil
}
