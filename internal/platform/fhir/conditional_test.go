package fhir

import (
	"testing"
)

func TestIdentifierGuard(t *testing.T) {
	tests := []struct {
		system string
		value  string
		want   string
	}{
		{"https://www.gmds.de/pk-nachwuchs/patient", "tcga-abc", "identifier=https://www.gmds.de/pk-nachwuchs/patient|tcga-abc"},
		{"https://www.cbioportal.org/patient", "TCGA-ABC", "identifier=https://www.cbioportal.org/patient|TCGA-ABC"},
		{"https://www.cbioportal.org/study", "", "identifier=https://www.cbioportal.org/study|"},
	}
	for _, tt := range tests {
		if got := IdentifierGuard(tt.system, tt.value); got != tt.want {
			t.Errorf("IdentifierGuard(%q, %q) = %q, want %q", tt.system, tt.value, got, tt.want)
		}
	}
}
