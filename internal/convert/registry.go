package convert

import (
	"github.com/google/uuid"

	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/pkg/fhirmodels"
)

// Kind names the entity a surrogate id is issued for.
type Kind string

const (
	KindPatient         Kind = fhirmodels.ResourcePatient
	KindResearchSubject Kind = fhirmodels.ResourceResearchSubject
	KindCondition       Kind = fhirmodels.ResourceCondition
	KindProcedure       Kind = fhirmodels.ResourceProcedure
	KindResearchStudy   Kind = fhirmodels.ResourceResearchStudy
)

type registryKey struct {
	kind Kind
	key  string
}

// Registry issues surrogate ids for one run. Ids are only shared inside a
// RowScope: the same natural key seen in a later row gets a new id, and the
// target server's conditional create reconciles the duplicates.
type Registry struct {
	newID func() uuid.UUID
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithGenerator replaces the UUID v4 generator, mainly for tests.
func WithGenerator(fn func() uuid.UUID) RegistryOption {
	return func(r *Registry) {
		r.newID = fn
	}
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{newID: uuid.New}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Row opens a scope for the conversion of a single row.
func (r *Registry) Row() *RowScope {
	return &RowScope{
		reg: r,
		ids: make(map[registryKey]string),
	}
}

// RowScope hands out ids for one row.
type RowScope struct {
	reg *Registry
	ids map[registryKey]string
}

// Assign returns the id for (kind, naturalKey), issuing one on first use
// within this scope.
func (s *RowScope) Assign(kind Kind, naturalKey string) string {
	k := registryKey{kind: kind, key: naturalKey}
	if id, ok := s.ids[k]; ok {
		return id
	}
	id := s.reg.newID().String()
	s.ids[k] = id
	return id
}
