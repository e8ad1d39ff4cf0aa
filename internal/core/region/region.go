// Package region maps free-text addresses to jurisdiction (state) codes for
// the final assignment fallback. Matching is a deliberate heuristic: a plain
// substring scan over the normalized address, first configured entry wins.
// It can mis-trigger on street or locality names that embed a state name;
// that behavior is documented and preserved, not corrected
package region

import (
	"strings"

	"civicroute/internal/core/normalize"
)

// Keyword pairs a lowercase state name with its short code.
// Order matters: the scan walks the table top to bottom and stops at the
// first hit, so entries are kept in their configured order, not sorted
type Keyword struct {
	Name string
	Code string
}

// Table is the fixed keyword table in match order
var Table = []Keyword{
	{"tamil nadu", "TN"},
	{"karnataka", "KA"},
	{"kerala", "KL"},
	{"andhra pradesh", "AP"},
	{"telangana", "TS"},
	{"maharashtra", "MH"},
	{"gujarat", "GJ"},
	{"rajasthan", "RJ"},
	{"uttar pradesh", "UP"},
	{"madhya pradesh", "MP"},
	{"west bengal", "WB"},
	{"bihar", "BR"},
	{"odisha", "OR"},
	{"jharkhand", "JH"},
	{"assam", "AS"},
	{"punjab", "PB"},
	{"haryana", "HR"},
	{"himachal pradesh", "HP"},
	{"uttarakhand", "UK"},
	{"goa", "GA"},
	{"delhi", "DL"},
}

// Match scans address for the first configured state keyword and returns its
// code. The address is normalized (case folded, width folded, marks stripped)
// before scanning so matching is effectively case-insensitive
func Match(address string) (code string, ok bool) {
	if address == "" {
		return "", false
	}
	folded := normalize.Address(address)
	for _, kw := range Table {
		if strings.Contains(folded, kw.Name) {
			return kw.Code, true
		}
	}
	return "", false
}
