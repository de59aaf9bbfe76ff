package fhir

// IdentifierGuard builds the ifNoneExist criteria for a conditional create
// on identifier: "identifier=<system>|<value>". The value is used verbatim;
// callers normalise it before passing it in.
func IdentifierGuard(system, value string) string {
	return "identifier=" + system + "|" + value
}
