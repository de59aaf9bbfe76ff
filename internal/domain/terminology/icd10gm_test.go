package terminology

import "testing"

func TestICD10GMLabel_Known(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"C25.0", "Bösartige Neubildung: Pankreaskopf"},
		{"C25.1", "Bösartige Neubildung: Pankreaskörper"},
		{"C25.2", "Bösartige Neubildung: Pankreasschwanz"},
		{"C25.3", "Bösartige Neubildung: Ductus pancreaticus"},
		{"C25.4", "Bösartige Neubildung: Endokriner Drüsenanteil des Pankreas"},
		{"C25.7", "Bösartige Neubildung: Sonstige Teile des Pankreas"},
		{"C25.8", "Bösartige Neubildung: Pankreas, mehrere Teilbereiche überlappend"},
		{"C25.9", "Bösartige Neubildung: Pankreas, nicht näher bezeichnet"},
	}
	for _, tt := range tests {
		got, ok := ICD10GMLabel(tt.code)
		if !ok {
			t.Errorf("ICD10GMLabel(%q) not found", tt.code)
		}
		if got != tt.want {
			t.Errorf("ICD10GMLabel(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
	if len(icd10gmLabels) != len(tests) {
		t.Errorf("expected %d known codes, got %d", len(tests), len(icd10gmLabels))
	}
}

func TestICD10GMLabel_Unknown(t *testing.T) {
	for _, code := range []string{"Z99.9", "C25.5", "c25.0", ""} {
		got, ok := ICD10GMLabel(code)
		if ok {
			t.Errorf("ICD10GMLabel(%q) unexpectedly found", code)
		}
		if got != "" {
			t.Errorf("ICD10GMLabel(%q) = %q, want empty string", code, got)
		}
	}
}
