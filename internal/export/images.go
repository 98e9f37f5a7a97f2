package export

import (
	"regexp"
	"sort"
	"strings"

	"content-portal/internal/domain/content"
	"content-portal/pkg/blob"
)

var imageURLPattern = regexp.MustCompile(`(?i)^https?://.*\.(png|jpg|jpeg|gif|webp)`)

const dataURIPrefix = "data:image/"

// IsImageRef classifies a string as an image reference: a direct image URL, a
// base64 data URI, or an object-storage URL.
func IsImageRef(s string) bool {
	return imageURLPattern.MatchString(s) ||
		strings.HasPrefix(s, dataURIPrefix) ||
		blob.IsStorageURL(s)
}

// FindImages recursively scans arbitrary nested data for image references and
// returns them de-duplicated in discovery order. Pure: no I/O, input is never
// mutated. Map keys are visited in sorted order so discovery order is stable.
func FindImages(value any) []string {
	seen := make(map[string]bool)
	var refs []string
	findImages(value, seen, &refs)
	return refs
}

func findImages(value any, seen map[string]bool, refs *[]string) {
	switch v := value.(type) {
	case string:
		if IsImageRef(v) && !seen[v] {
			seen[v] = true
			*refs = append(*refs, v)
		}
	case []any:
		for _, item := range v {
			findImages(item, seen, refs)
		}
	case content.SectionData:
		findImages(map[string]any(v), seen, refs)
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			findImages(v[k], seen, refs)
		}
	case map[string]content.SectionData:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			findImages(v[k], seen, refs)
		}
	}
}
