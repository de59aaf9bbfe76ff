package terminology

// icd10gmLabels holds the German display text for the pancreatic neoplasm
// codes that occur in the TCGA PAAD cohort.
var icd10gmLabels = map[string]string{
	"C25.0": "Bösartige Neubildung: Pankreaskopf",
	"C25.1": "Bösartige Neubildung: Pankreaskörper",
	"C25.2": "Bösartige Neubildung: Pankreasschwanz",
	"C25.3": "Bösartige Neubildung: Ductus pancreaticus",
	"C25.4": "Bösartige Neubildung: Endokriner Drüsenanteil des Pankreas",
	"C25.7": "Bösartige Neubildung: Sonstige Teile des Pankreas",
	"C25.8": "Bösartige Neubildung: Pankreas, mehrere Teilbereiche überlappend",
	"C25.9": "Bösartige Neubildung: Pankreas, nicht näher bezeichnet",
}

// ICD10GMLabel returns the display label for an ICD-10-GM code. Unknown
// codes yield "" and false; callers still emit the coding without a display.
func ICD10GMLabel(code string) (string, bool) {
	label, ok := icd10gmLabels[code]
	return label, ok
}
