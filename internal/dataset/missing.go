package dataset

import "strings"

// missingMarkers are cell values read as "no value", in addition to blanks.
var missingMarkers = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {},
	"nan": {}, "null": {},
}

// IsMissing reports whether a cell holds no value.
func IsMissing(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	_, ok := missingMarkers[v]
	return ok
}

// Cell returns the trimmed value of a cell, or nil when it is missing.
func Cell(v string) *string {
	if IsMissing(v) {
		return nil
	}
	s := strings.TrimSpace(v)
	return &s
}
