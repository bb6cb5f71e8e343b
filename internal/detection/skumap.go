package detection

import "strings"

// classToSKU maps lowercased detected classes to catalog SKUs. "unknown"
// deliberately has no entry.
var classToSKU = map[string]string{
	"coke":  "COKE-001",
	"pepsi": "PEPSI-001",
	"chips": "CHIPS-001",
	"water": "WATER-001",
}

// ResolveSKU returns the SKU for a detected class, case-insensitively.
// A miss is a reportable condition for the caller, never an error here.
func ResolveSKU(class string) (string, bool) {
	sku, ok := classToSKU[strings.ToLower(class)]
	return sku, ok
}
