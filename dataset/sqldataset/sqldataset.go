package sqldataset

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
)

/*
Read takes a context, an Adapter, the name of a table and the name of its
label column and returns a set with every row of the table. An empty
label returns an unlabeled set with every column of the table.

NULL values are read as missing, texts and blobs as strings, timestamps
as RFC3339 strings and numbers as float64 or int64 values.
*/
func Read(ctx context.Context, a Adapter, table, label string) (*dataset.Set, error) {
	qt, err := a.QuoteIdentifier(table)
	if err != nil {
		return nil, err
	}
	rows, err := a.DB().QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", qt))
	if err != nil {
		return nil, fmt.Errorf("querying table %s: %v", table, err)
	}
	defer rows.Close()
	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("listing columns of table %s: %v", table, err)
	}
	var data [][]interface{}
	for rows.Next() {
		values := make([]interface{}, len(header))
		dest := make([]interface{}, len(header))
		for i := range values {
			dest[i] = &values[i]
		}
		err = rows.Scan(dest...)
		if err != nil {
			return nil, fmt.Errorf("scanning row %d of table %s: %v", len(data)+1, table, err)
		}
		for i, v := range values {
			values[i] = normalize(v)
		}
		data = append(data, values)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("reading table %s: %v", table, err)
	}
	return dataset.FromTable(header, data, label)
}

func normalize(v interface{}) interface{} {
	switch v := v.(type) {
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339)
	}
	return v
}

/*
Write takes a context, an Adapter, the name of a table, a set and the name
to give to its label column, and stores the set rows in the table,
creating it if it does not exist. The label column is only written for
labeled sets given a non-empty name. Column types are inferred from the
set rows. Rows are inserted in a single transaction.
*/
func Write(ctx context.Context, a Adapter, table string, s *dataset.Set, label string) error {
	labeled := s.Labeled() && label != ""
	qt, err := a.QuoteIdentifier(table)
	if err != nil {
		return err
	}
	names := append([]string(nil), s.Header...)
	if labeled {
		names = append(names, label)
	}
	columns := make([]string, len(names))
	for i, name := range names {
		columns[i], err = a.QuoteIdentifier(name)
		if err != nil {
			return err
		}
	}
	types := feature.InferTypes(s.Rows, s.Width(), nil)
	var createStmtBuf bytes.Buffer
	createStmtBuf.WriteString(fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (", qt))
	for i, c := range columns {
		if i > 0 {
			createStmtBuf.WriteString(", ")
		}
		sqlType := "TEXT"
		if i < len(types) && types[i] == feature.Continuous {
			sqlType = "REAL"
		}
		createStmtBuf.WriteString(fmt.Sprintf("%s %s NULL", c, sqlType))
	}
	createStmtBuf.WriteString(")")
	_, err = a.DB().ExecContext(ctx, createStmtBuf.String())
	if err != nil {
		return fmt.Errorf("ensuring table %s exists: %v", table, err)
	}
	var insertStmtBuf bytes.Buffer
	insertStmtBuf.WriteString(fmt.Sprintf("INSERT INTO %s (", qt))
	for i, c := range columns {
		if i > 0 {
			insertStmtBuf.WriteString(", ")
		}
		insertStmtBuf.WriteString(c)
	}
	insertStmtBuf.WriteString(") VALUES (")
	for i := range columns {
		if i > 0 {
			insertStmtBuf.WriteString(", ")
		}
		insertStmtBuf.WriteString(a.Placeholder(i + 1))
	}
	insertStmtBuf.WriteString(")")
	tx, err := a.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %v", err)
	}
	insertStmt, err := tx.PrepareContext(ctx, insertStmtBuf.String())
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("preparing insert command: %v", err)
	}
	defer insertStmt.Close()
	for i, row := range s.Rows {
		args := make([]interface{}, len(columns))
		for j, t := range types {
			if j < len(row) {
				args[j] = columnValue(row[j], t)
			}
		}
		if labeled {
			args[len(args)-1] = s.Labels[i]
		}
		_, err = insertStmt.ExecContext(ctx, args...)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting row %d: %v", i+1, err)
		}
	}
	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("committing rows: %v", err)
	}
	return nil
}

func columnValue(v interface{}, t feature.Type) interface{} {
	if feature.IsMissing(v) {
		return nil
	}
	if t == feature.Continuous {
		if f, ok := feature.Number(v); ok {
			return f
		}
		return nil
	}
	k, ok := feature.Key(v)
	if !ok {
		return nil
	}
	return k
}
