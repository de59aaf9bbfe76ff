package fhir

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/pkg/fhirmodels"
)

// Bundle represents a FHIR Bundle resource.
type Bundle struct {
	ResourceType string        `json:"resourceType"`
	ID           string        `json:"id,omitempty"`
	Type         string        `json:"type"`
	Entry        []BundleEntry `json:"entry,omitempty"`
	Timestamp    *time.Time    `json:"timestamp,omitempty"`
}

type BundleEntry struct {
	FullURL  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource,omitempty"`
	Request  *BundleRequest  `json:"request,omitempty"`
}

type BundleRequest struct {
	Method      string `json:"method"`
	URL         string `json:"url"`
	IfNoneExist string `json:"ifNoneExist,omitempty"`
}

// NewTransactionBundle creates a transaction Bundle from the given entries.
// Entry order is preserved as given.
func NewTransactionBundle(entries ...BundleEntry) *Bundle {
	return &Bundle{
		ResourceType: fhirmodels.ResourceBundle,
		Type:         fhirmodels.BundleTransaction,
		Entry:        entries,
	}
}

// NewCreateEntry wraps r in a POST entry. A non-empty ifNoneExist turns the
// create into a conditional create.
func NewCreateEntry(r Resource, ifNoneExist string) (BundleEntry, error) {
	raw, err := json.Marshal(r.ToFHIR())
	if err != nil {
		return BundleEntry{}, fmt.Errorf("marshal %s/%s: %w", r.ResourceType(), r.ResourceID(), err)
	}
	return BundleEntry{
		FullURL:  FormatReference(r.ResourceType(), r.ResourceID()),
		Resource: raw,
		Request: &BundleRequest{
			Method:      http.MethodPost,
			URL:         r.ResourceType(),
			IfNoneExist: ifNoneExist,
		},
	}, nil
}

// ResourceTypes lists the resourceType of every entry in order. Entries
// whose resource cannot be decoded or has no resourceType are left out.
func (b *Bundle) ResourceTypes() []string {
	types := make([]string, 0, len(b.Entry))
	for _, e := range b.Entry {
		var head struct {
			ResourceType string `json:"resourceType"`
		}
		if err := json.Unmarshal(e.Resource, &head); err != nil || head.ResourceType == "" {
			continue
		}
		types = append(types, head.ResourceType)
	}
	return types
}

// FormatReference creates a FHIR reference string.
func FormatReference(resourceType, id string) string {
	return fmt.Sprintf("%s/%s", resourceType, id)
}
