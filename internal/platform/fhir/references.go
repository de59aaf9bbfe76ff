package fhir

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDanglingReference is returned when a resource in a bundle points at a
// resource that is neither an entry of the bundle nor a known external target.
var ErrDanglingReference = errors.New("dangling reference")

// CheckReferences verifies that every Reference.reference inside the bundle
// resolves to the fullUrl of an entry in the same bundle, or to one of the
// given external references (resources created by an earlier submission).
func CheckReferences(b *Bundle, external ...string) error {
	targets := make(map[string]bool, len(b.Entry)+len(external))
	for _, e := range b.Entry {
		if e.FullURL != "" {
			targets[e.FullURL] = true
		}
	}
	for _, ref := range external {
		targets[ref] = true
	}

	for i, e := range b.Entry {
		var doc interface{}
		if err := json.Unmarshal(e.Resource, &doc); err != nil {
			return fmt.Errorf("entry %d: decode resource: %w", i, err)
		}
		for _, ref := range collectReferences(doc, nil) {
			if !targets[ref] {
				return fmt.Errorf("entry %d (%s): %w: %s", i, e.FullURL, ErrDanglingReference, ref)
			}
		}
	}
	return nil
}

// collectReferences walks a decoded JSON document and returns the value of
// every "reference" string field.
func collectReferences(v interface{}, acc []string) []string {
	switch val := v.(type) {
	case map[string]interface{}:
		for k, child := range val {
			if s, ok := child.(string); ok && k == "reference" {
				acc = append(acc, s)
				continue
			}
			acc = collectReferences(child, acc)
		}
	case []interface{}:
		for _, child := range val {
			acc = collectReferences(child, acc)
		}
	}
	return acc
}
