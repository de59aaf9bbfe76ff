package convert

import (
	"bytes"
	"context"
	"fmt"

	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/platform/blobstore"
	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/platform/fhir"
)

// StudyKey names the output unit of the study run.
const StudyKey = "study.json"

// Sink receives finished bundles. It returns where the unit was written.
type Sink interface {
	WriteBundle(ctx context.Context, subjectKey string, b *fhir.Bundle) (string, error)
	WriteStudy(ctx context.Context, b *fhir.Bundle) (string, error)
}

// BundleKey names the output unit of one subject.
func BundleKey(subjectKey string) string {
	return subjectKey + ".json"
}

// StoreSink writes pretty-printed bundles into a blob store, one key per
// subject.
type StoreSink struct {
	store blobstore.Store
}

func NewStoreSink(store blobstore.Store) *StoreSink {
	return &StoreSink{store: store}
}

func (s *StoreSink) WriteBundle(ctx context.Context, subjectKey string, b *fhir.Bundle) (string, error) {
	return s.put(ctx, BundleKey(subjectKey), b, map[string]string{"subject": subjectKey})
}

func (s *StoreSink) WriteStudy(ctx context.Context, b *fhir.Bundle) (string, error) {
	return s.put(ctx, StudyKey, b, nil)
}

func (s *StoreSink) put(ctx context.Context, key string, b *fhir.Bundle, md map[string]string) (string, error) {
	data, err := fhir.MarshalPretty(b)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", key, err)
	}
	info, err := s.store.Put(ctx, key, bytes.NewReader(data), blobstore.PutOptions{
		ContentType: blobstore.ContentTypeFHIRJSON,
		Metadata:    md,
	})
	if err != nil {
		return "", fmt.Errorf("write %s: %w", key, err)
	}
	if info.URL != "" {
		return info.URL, nil
	}
	return key, nil
}
