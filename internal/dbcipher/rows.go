package dbcipher

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/dyne/atbash/internal/schema"
	"github.com/dyne/atbash/internal/transform"
)

type tableCopy struct {
	tbl      *schema.Table
	colIndex map[string]int
	useRowID bool
	ciphered []string
	ciphers  map[string]transform.Transformer
}

func copyTable(ctx context.Context, inDB, outDB *sql.DB, tbl *schema.Table, ciphers map[string]transform.Transformer, opts Options) (int64, int64, error) {
	tc := &tableCopy{
		tbl:      tbl,
		colIndex: map[string]int{},
		useRowID: len(tbl.PrimaryKeys) == 0 && !tbl.WithoutRowID,
		ciphered: sortedColumns(ciphers),
		ciphers:  ciphers,
	}
	colNames := make([]string, 0, len(tbl.Columns))
	for i, c := range tbl.Columns {
		colNames = append(colNames, c.Name)
		tc.colIndex[c.Name] = i
	}
	selectCols := make([]string, 0, len(colNames)+1)
	if tc.useRowID {
		selectCols = append(selectCols, "rowid")
	}
	selectCols = append(selectCols, quotedCols(colNames)...)

	tx, err := outDB.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("begin copy %s: %w", tbl.Name, err)
	}
	defer tx.Rollback()
	insertSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", schema.QuoteIdent(tbl.Name), strings.Join(quotedCols(colNames), ", "), placeholders(len(colNames)))
	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return 0, 0, fmt.Errorf("prepare insert %s: %w", tbl.Name, err)
	}
	defer stmt.Close()

	query := fmt.Sprintf("SELECT %s FROM %s %s", strings.Join(selectCols, ", "), schema.QuoteIdent(tbl.Name), tc.orderBy())
	rows, err := inDB.QueryContext(ctx, query)
	if err != nil {
		return 0, 0, fmt.Errorf("select %s: %w", tbl.Name, err)
	}
	defer rows.Close()

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}
	var n, ciphered int64
	if jobs == 1 || len(ciphers) == 0 {
		n, ciphered, err = tc.processSequential(ctx, rows, stmt, len(selectCols))
	} else {
		n, ciphered, err = tc.processParallel(ctx, rows, stmt, len(selectCols), jobs)
	}
	if err != nil {
		return 0, 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit %s: %w", tbl.Name, err)
	}
	opts.Logger.Debugf("table %s: %d rows, %d values ciphered", tbl.Name, n, ciphered)
	return n, ciphered, nil
}

func (tc *tableCopy) orderBy() string {
	if len(tc.tbl.PrimaryKeys) > 0 {
		return "ORDER BY " + strings.Join(quotedCols(tc.tbl.PrimaryKeys), ", ")
	}
	if tc.useRowID {
		return "ORDER BY rowid"
	}
	return ""
}

func scanRow(rows *sql.Rows, width int) ([]any, error) {
	targets := make([]any, width)
	values := make([]any, width)
	for i := range targets {
		targets[i] = &values[i]
	}
	if err := rows.Scan(targets...); err != nil {
		return nil, err
	}
	return values, nil
}

// split separates the rowid, when selected, from the column values.
func (tc *tableCopy) split(scanned []any) ([]any, transform.RowContext) {
	values := scanned
	var pk []any
	if tc.useRowID {
		pk = []any{scanned[0]}
		values = scanned[1:]
	} else {
		for _, col := range tc.tbl.PrimaryKeys {
			pk = append(pk, values[tc.colIndex[col]])
		}
	}
	return values, transform.RowContext{Table: tc.tbl.Name, PK: pk}
}

func (tc *tableCopy) apply(values []any, row transform.RowContext) (int64, error) {
	var n int64
	for _, col := range tc.ciphered {
		idx := tc.colIndex[col]
		if values[idx] == nil {
			continue
		}
		row.Column = col
		out, err := tc.ciphers[col].Transform(values[idx], row)
		if err != nil {
			return n, fmt.Errorf("cipher %s.%s: %w", tc.tbl.Name, col, err)
		}
		values[idx] = out
		n++
	}
	return n, nil
}

func (tc *tableCopy) processSequential(ctx context.Context, rows *sql.Rows, stmt *sql.Stmt, width int) (int64, int64, error) {
	var count, ciphered int64
	for rows.Next() {
		scanned, err := scanRow(rows, width)
		if err != nil {
			return 0, 0, fmt.Errorf("scan row %s: %w", tc.tbl.Name, err)
		}
		values, row := tc.split(scanned)
		n, err := tc.apply(values, row)
		if err != nil {
			return 0, 0, err
		}
		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			return 0, 0, fmt.Errorf("insert %s: %w", tc.tbl.Name, err)
		}
		count++
		ciphered += n
	}
	if err := rows.Err(); err != nil {
		return 0, 0, fmt.Errorf("iterate %s: %w", tc.tbl.Name, err)
	}
	return count, ciphered, nil
}

// processParallel ciphers rows on a pool of workers and inserts them in
// their original order.
func (tc *tableCopy) processParallel(ctx context.Context, rows *sql.Rows, stmt *sql.Stmt, width, jobs int) (int64, int64, error) {
	type job struct {
		index  int
		values []any
		row    transform.RowContext
	}
	type result struct {
		index    int
		values   []any
		ciphered int64
		err      error
	}
	ctx, cancel := context.WithCancel(ctx)
	jobsCh := make(chan job, jobs*2)
	resultsCh := make(chan result, jobs*2)
	var wg sync.WaitGroup
	for i := 0; i < jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobsCh {
				n, err := tc.apply(j.values, j.row)
				select {
				case resultsCh <- result{index: j.index, values: j.values, ciphered: n, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	jobsOpen := true
	closeJobs := func() {
		if jobsOpen {
			close(jobsCh)
			jobsOpen = false
		}
	}
	defer func() {
		closeJobs()
		cancel()
		wg.Wait()
	}()

	var count, ciphered int64
	pending := map[int]result{}
	next := 0
	flush := func(res result) error {
		if res.err != nil {
			return res.err
		}
		pending[res.index] = res
		for {
			r, ok := pending[next]
			if !ok {
				return nil
			}
			if _, err := stmt.ExecContext(ctx, r.values...); err != nil {
				return fmt.Errorf("insert %s: %w", tc.tbl.Name, err)
			}
			delete(pending, next)
			count++
			ciphered += r.ciphered
			next++
		}
	}

	recv := func() (result, error) {
		select {
		case r := <-resultsCh:
			return r, nil
		case <-ctx.Done():
			return result{}, ctx.Err()
		}
	}

	index := 0
	inflight := 0
	for rows.Next() {
		scanned, err := scanRow(rows, width)
		if err != nil {
			return 0, 0, fmt.Errorf("scan row %s: %w", tc.tbl.Name, err)
		}
		values, row := tc.split(scanned)
		select {
		case jobsCh <- job{index: index, values: values, row: row}:
		case <-ctx.Done():
			return 0, 0, ctx.Err()
		}
		index++
		inflight++
		for inflight > jobs*2 {
			res, err := recv()
			if err != nil {
				return 0, 0, err
			}
			inflight--
			if err := flush(res); err != nil {
				return 0, 0, err
			}
		}
	}
	if err := rows.Err(); err != nil {
		return 0, 0, fmt.Errorf("iterate %s: %w", tc.tbl.Name, err)
	}
	closeJobs()
	for ; inflight > 0; inflight-- {
		res, err := recv()
		if err != nil {
			return 0, 0, err
		}
		if err := flush(res); err != nil {
			return 0, 0, err
		}
	}
	return count, ciphered, nil
}
