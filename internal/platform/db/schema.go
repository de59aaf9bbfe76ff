package db

import (
	"context"
	"fmt"
)

// BundleTable holds one converted bundle (or the study) per key. content is
// JSON rather than JSONB so the stored text keeps its key order and
// indentation.
const BundleTable = "fhir_bundle"

const createBundleTable = `CREATE TABLE IF NOT EXISTS ` + BundleTable + ` (
    key          TEXT PRIMARY KEY,
    content      JSON NOT NULL,
    content_type TEXT NOT NULL DEFAULT 'application/fhir+json',
    etag         TEXT NOT NULL,
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// EnsureBundleTable creates the bundle table if it does not exist.
func EnsureBundleTable(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, createBundleTable); err != nil {
		return fmt.Errorf("create %s table: %w", BundleTable, err)
	}
	return nil
}
