package export

import (
	"sort"
	"strings"
	"unicode"

	"content-portal/internal/domain/content"
)

// CatalogEntry describes one known content section.
type CatalogEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SectionInfo is a catalog entry annotated for one resolved bundle.
type SectionInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Known       bool   `json:"known"`
	HasData     bool   `json:"has_data"`
}

// Catalog is the canonical, ordered list of sections the intake forms
// produce. Ad-hoc sections discovered in a bundle are appended after it.
var Catalog = []CatalogEntry{
	{ID: "identity", Name: "Identity", Description: "Business name, tagline and owner details"},
	{ID: "design", Name: "Design", Description: "Overall design direction and style preferences"},
	{ID: "colors", Name: "Colors", Description: "Brand color palette"},
	{ID: "typography", Name: "Typography", Description: "Font family and text style choices"},
	{ID: "logo", Name: "Logo", Description: "Logo uploads and usage notes"},
	{ID: "contact", Name: "Contact", Description: "Address, phone, email and opening hours"},
	{ID: "social", Name: "Social Links", Description: "Social media profile links"},
	{ID: "seo", Name: "SEO", Description: "Search keywords and meta descriptions"},
	{ID: "promoBar", Name: "Promo Bar", Description: "Site-wide promotional banner"},
	{ID: "leadGenerator", Name: "Lead Generator", Description: "Lead capture widget configuration"},
	{ID: "testimonials", Name: "Testimonials", Description: "Customer testimonials"},
	{ID: "faq", Name: "FAQ", Description: "Frequently asked questions"},
	{ID: "footer", Name: "Footer", Description: "Footer links and legal text"},
	{ID: "home", Name: "Home", Description: "Home page copy"},
	{ID: "about", Name: "About", Description: "About page copy"},
	{ID: "services", Name: "Services", Description: "Service list with descriptions and pricing"},
	{ID: "gallery", Name: "Gallery", Description: "Photo gallery"},
	{ID: "team", Name: "Team", Description: "Team member profiles"},
	{ID: "pricing", Name: "Pricing", Description: "Pricing tables"},
	{ID: "reviews", Name: "Reviews", Description: "Review page content"},
	{ID: "privacy", Name: "Privacy Policy", Description: "Privacy policy page"},
	{ID: "terms", Name: "Terms", Description: "Terms of service page"},
	{ID: content.SectionBlog, Name: "Blog", Description: "Blog posts"},
	{ID: content.SectionLandingPages, Name: "Landing Pages", Description: "Campaign landing pages"},
	{ID: content.SectionDiscoveryCall, Name: "Discovery Call", Description: "Discovery call scheduling configuration"},
	{ID: content.SectionImages, Name: "Images", Description: "All uploaded and referenced images"},
}

// ListSections returns every known section in registry order, annotated with
// whether the bundle holds content for it, followed by any ad-hoc section ids
// found in the bundle, sorted by id. Ad-hoc entries only appear when data
// exists, so they are always marked HasData.
func ListSections(b *content.Bundle) []SectionInfo {
	known := make(map[string]bool, len(Catalog))
	sections := make([]SectionInfo, 0, len(Catalog))

	for _, entry := range Catalog {
		known[entry.ID] = true
		data, _ := SectionData(b, entry.ID)
		sections = append(sections, SectionInfo{
			ID:          entry.ID,
			Name:        entry.Name,
			Description: entry.Description,
			Known:       true,
			HasData:     HasContent(entry.ID, data),
		})
	}

	adhoc := make(map[string]bool)
	for _, m := range []map[string]content.SectionData{b.Settings, b.Pages, b.Content} {
		for id := range m {
			if !known[id] && !adhoc[id] {
				adhoc[id] = true
			}
		}
	}

	adhocIDs := make([]string, 0, len(adhoc))
	for id := range adhoc {
		adhocIDs = append(adhocIDs, id)
	}
	sort.Strings(adhocIDs)

	for _, id := range adhocIDs {
		sections = append(sections, SectionInfo{
			ID:      id,
			Name:    Title(id),
			Known:   false,
			HasData: true,
		})
	}

	return sections
}

// HasContent reports whether a section's resolved data amounts to anything a
// user would see. A handful of known sections have shape-specific checks; the
// rest use the generic non-empty rule.
func HasContent(id string, data content.SectionData) bool {
	switch id {
	case content.SectionLandingPages:
		pages, ok := data["pages"].([]any)
		return ok && len(pages) > 0
	case content.SectionImages:
		images, ok := data["images"].([]any)
		return ok && len(images) > 0
	case "promoBar":
		return data != nil
	case content.SectionBlog:
		posts, ok := data["posts"].([]any)
		return ok && len(posts) > 0
	}

	return hasValue(data)
}

func hasValue(value any) bool {
	switch v := value.(type) {
	case content.SectionData:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	case []any:
		return len(v) > 0
	case string:
		return strings.TrimSpace(v) != ""
	case nil:
		return false
	default:
		return true
	}
}

// Title turns a raw section id into a human title: Lead Generator from
// leadGenerator. Known registry entries keep their explicit display name.
func Title(id string) string {
	for _, entry := range Catalog {
		if entry.ID == id {
			return entry.Name
		}
	}

	var b strings.Builder
	for i, r := range id {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
