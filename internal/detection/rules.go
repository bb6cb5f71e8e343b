// Package detection implements the filename-based detection stub: an ordered
// rule table mapping upload filenames to fixed item counts and a pre-rendered
// annotated image. There is no image processing — matching is a pure
// substring lookup, loaded once at process start and never mutated.
package detection

import "strings"

// Rule maps a filename substring to fixed per-class counts and the path of
// the pre-rendered bounding-box image (relative to the static root).
type Rule struct {
	Key    string
	Counts map[string]int
	BBox   string
}

// Result is what one detection produces.
type Result struct {
	Counts map[string]int
	BBox   string
}

// rules are evaluated in order; the first matching key wins. Ordering is
// significant: "shelf2_alt" must precede "shelf2", which is a substring of it.
var rules = []Rule{
	{Key: "shelf2_alt", Counts: map[string]int{"chips": 3}, BBox: "bboxes/shelf2_alt_bbox.jpg"},
	{Key: "shelf1", Counts: map[string]int{"coke": 14, "pepsi": 5}, BBox: "bboxes/shelf1_bbox.jpg"},
	{Key: "shelf2", Counts: map[string]int{"chips": 5, "coke": 1}, BBox: "bboxes/shelf2_bbox.jpg"},
	{Key: "shelf3", Counts: map[string]int{"water": 13, "chips": 3, "coke": 3}, BBox: "bboxes/shelf3_bbox.jpg"},
}

const (
	defaultBBox  = "bboxes/unknown_bbox.jpg"
	unknownClass = "unknown"
)

// Detect matches filename (case-insensitive) against the rule table and
// returns a copy of the winning rule's counts. An empty or unmatched
// filename yields {"unknown": 0} and the placeholder image. Never fails.
func Detect(filename string) Result {
	f := strings.ToLower(filename)
	for _, r := range rules {
		if strings.Contains(f, r.Key) {
			counts := make(map[string]int, len(r.Counts))
			for class, qty := range r.Counts {
				counts[class] = qty
			}
			return Result{Counts: counts, BBox: r.BBox}
		}
	}
	return Result{Counts: map[string]int{unknownClass: 0}, BBox: defaultBBox}
}

// IsUnknown reports whether class is the sentinel "unknown" label, which is
// intentionally excluded from SKU resolution.
func IsUnknown(class string) bool {
	return strings.EqualFold(class, unknownClass)
}
