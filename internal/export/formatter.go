package export

import (
	"fmt"
	"sort"
	"strings"

	"content-portal/internal/domain/content"
)

const (
	indentUnit     = "  "
	noContentLine  = "No content available."
	imageURLsNote  = "If any images are missing from the archive, use these links to download them manually:"
	imageURLsTitle = "IMAGE URLS"
)

// FormatSection renders one section's raw data as plain text. Sections with a
// fixed, known shape (Services, About, Contact) get purpose-built layouts;
// everything else goes through the generic walker.
func FormatSection(data any, displayName string) string {
	if !hasValue(data) {
		return noContentLine + "\n"
	}

	var b strings.Builder
	b.WriteString(displayName + "\n")
	b.WriteString(strings.Repeat("=", len(displayName)) + "\n\n")

	switch displayName {
	case "Services":
		formatServices(&b, data)
	case "About":
		formatAbout(&b, data)
	case "Contact":
		formatContact(&b, data)
	default:
		FormatGeneric(&b, data, 0)
	}

	return b.String()
}

// Summary renders a section like FormatSection and appends an IMAGE URLS
// block listing every discovered image reference. Archives bundle this so the
// links survive even when an automated image download failed.
func Summary(data any, displayName string) string {
	out := FormatSection(data, displayName)

	refs := FindImages(data)
	if len(refs) == 0 {
		return out
	}

	var b strings.Builder
	b.WriteString(out)
	b.WriteString("\n" + imageURLsTitle + "\n")
	b.WriteString(imageURLsNote + "\n")
	for _, ref := range refs {
		b.WriteString(ref + "\n")
	}
	return b.String()
}

// FormatGeneric recursively flattens arbitrary nested data into the portal's
// plain-text form: "key: value" lines, "key URL: value" for http(s) strings,
// nested blocks indented one level, sequences enumerated as "Item N:" blocks.
func FormatGeneric(b *strings.Builder, value any, indent int) {
	prefix := strings.Repeat(indentUnit, indent)

	switch v := normalize(value).(type) {
	case map[string]any:
		formatPairs(b, v, indent)
	case []any:
		for i, item := range v {
			b.WriteString(fmt.Sprintf("%sItem %d:\n", prefix, i+1))
			FormatGeneric(b, item, indent+1)
		}
	case string:
		b.WriteString(prefix + v + "\n")
	case nil:
		// absent value, nothing to render
	default:
		b.WriteString(fmt.Sprintf("%s%v\n", prefix, v))
	}
}

func formatPairs(b *strings.Builder, m map[string]any, indent int) {
	prefix := strings.Repeat(indentUnit, indent)

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch v := normalize(m[key]).(type) {
		case map[string]any:
			b.WriteString(prefix + key + ":\n")
			formatPairs(b, v, indent+1)
			b.WriteString("\n")
		case []any:
			b.WriteString(prefix + key + ":\n")
			for i, item := range v {
				b.WriteString(fmt.Sprintf("%s%sItem %d:\n", prefix, indentUnit, i+1))
				FormatGeneric(b, item, indent+2)
			}
		case string:
			if isHTTPURL(v) {
				b.WriteString(fmt.Sprintf("%s%s URL: %s\n", prefix, key, v))
			} else {
				b.WriteString(fmt.Sprintf("%s%s: %s\n", prefix, key, v))
			}
		case nil:
			// omitted, not placeholdered
		default:
			b.WriteString(fmt.Sprintf("%s%s: %v\n", prefix, key, v))
		}
	}
}

// formatServices renders the services list: each entry's name as a header,
// then the description, price and image lines that are present.
func formatServices(b *strings.Builder, data any) {
	m, ok := normalize(data).(map[string]any)
	if !ok {
		FormatGeneric(b, data, 0)
		return
	}

	services, ok := m["services"].([]any)
	if !ok {
		FormatGeneric(b, data, 0)
		return
	}

	for _, raw := range services {
		svc, ok := normalize(raw).(map[string]any)
		if !ok {
			continue
		}
		if name := stringField(svc, "name"); name != "" {
			b.WriteString(name + "\n")
			b.WriteString(strings.Repeat("-", len(name)) + "\n")
		}
		writeField(b, svc, "description", "Description")
		writeField(b, svc, "price", "Price")
		writeField(b, svc, "imageUrl", "Image URL")
		writeField(b, svc, "iconUrl", "Icon URL")
		b.WriteString("\n")
	}
}

func formatAbout(b *strings.Builder, data any) {
	m, ok := normalize(data).(map[string]any)
	if !ok {
		FormatGeneric(b, data, 0)
		return
	}

	writeField(b, m, "description", "Description")
	writeField(b, m, "imageUrl", "Image URL")
	writeField(b, m, "videoUrl", "Video URL")
}

func formatContact(b *strings.Builder, data any) {
	m, ok := normalize(data).(map[string]any)
	if !ok {
		FormatGeneric(b, data, 0)
		return
	}

	writeField(b, m, "address", "Address")
	writeField(b, m, "phone", "Phone")
	writeField(b, m, "email", "Email")
	writeField(b, m, "website", "Website")
	writeField(b, m, "hours", "Hours")
	writeField(b, m, "mapUrl", "Map URL")
}

func writeField(b *strings.Builder, m map[string]any, key, label string) {
	if v := stringField(m, key); v != "" {
		b.WriteString(fmt.Sprintf("%s: %s\n", label, v))
	}
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	if v, ok := m[key]; ok && v != nil {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// normalize unwraps SectionData to its underlying map form so the walker only
// deals in map[string]any.
func normalize(value any) any {
	if v, ok := value.(content.SectionData); ok {
		return map[string]any(v)
	}
	return value
}
