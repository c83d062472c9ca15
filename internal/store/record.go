package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// recordsTable holds one row per logical record (scores, streak, vocab, ...).
const recordsTable = "records"

// Column names of recordsTable.
const (
	colName      = "name"
	colData      = "data"
	colUpdatedAt = "updated_at"
)

func migrate(ctx context.Context, drv *entsql.Driver) error {
	ddl := `CREATE TABLE IF NOT EXISTS ` + recordsTable + ` (
		` + colName + ` TEXT PRIMARY KEY,
		` + colData + ` BLOB NOT NULL,
		` + colUpdatedAt + ` DATETIME NOT NULL
	)`
	if err := drv.Exec(ctx, ddl, []any{}, nil); err != nil {
		return fmt.Errorf("create %s table: %w", recordsTable, err)
	}
	return nil
}

// RecordRepo stores JSON blobs by key. Every Set is a single upsert, so a
// blob is never observed half-written.
type RecordRepo struct {
	drv *entsql.Driver
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *RecordRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args := builder().
		Select(colData).
		From(entsql.Table(recordsTable)).
		Where(entsql.EQ(colName, key)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, false, fmt.Errorf("query record %s: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, false, fmt.Errorf("query record %s: %w", key, err)
		}
		return nil, false, nil
	}
	var data []byte
	if err := rows.Scan(&data); err != nil {
		return nil, false, fmt.Errorf("scan record %s: %w", key, err)
	}
	return data, true, nil
}

func (r *RecordRepo) Set(ctx context.Context, key string, blob []byte) error {
	query, args := builder().
		Insert(recordsTable).
		Columns(colName, colData, colUpdatedAt).
		Values(key, blob, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns(colName),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save record %s: %w", key, err)
	}
	return nil
}

func (r *RecordRepo) Remove(ctx context.Context, key string) error {
	query, args := builder().
		Delete(recordsTable).
		Where(entsql.EQ(colName, key)).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("remove record %s: %w", key, err)
	}
	return nil
}
