package blobstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/platform/db"
)

// PostgresStore keeps each key as a row of the fhir_bundle table. Content
// must be valid JSON and is stored as written.
type PostgresStore struct {
	q db.Querier
}

// NewPostgresStore ensures the bundle table exists and returns a store on q.
func NewPostgresStore(ctx context.Context, q db.Querier) (*PostgresStore, error) {
	if err := db.EnsureBundleTable(ctx, q); err != nil {
		return nil, err
	}
	return &PostgresStore{q: q}, nil
}

func (s *PostgresStore) Driver() Driver { return DriverPostgres }

func (s *PostgresStore) Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error) {
	if err := ValidateKey(key); err != nil {
		return Info{}, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Info{}, fmt.Errorf("reading content: %w", err)
	}
	if !json.Valid(data) {
		return Info{}, fmt.Errorf("put %s: content is not valid JSON", key)
	}
	contentType := opts.ContentType
	if contentType == "" {
		contentType = ContentTypeFHIRJSON
	}
	etag := etagOf(data)

	var updatedAt time.Time
	err = s.q.QueryRow(ctx, `
		INSERT INTO `+db.BundleTable+` (key, content, content_type, etag, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (key) DO UPDATE
		SET content = EXCLUDED.content,
		    content_type = EXCLUDED.content_type,
		    etag = EXCLUDED.etag,
		    updated_at = EXCLUDED.updated_at
		RETURNING updated_at`,
		key, string(data), contentType, etag,
	).Scan(&updatedAt)
	if err != nil {
		return Info{}, fmt.Errorf("upsert bundle %s: %w", key, err)
	}

	return Info{
		Key:          key,
		Size:         int64(len(data)),
		ContentType:  contentType,
		ETag:         etag,
		Metadata:     cloneMetadata(opts.Metadata),
		LastModified: updatedAt.UTC(),
		URL:          "postgres:" + db.BundleTable + "/" + key,
	}, nil
}
