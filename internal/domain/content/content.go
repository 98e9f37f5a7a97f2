package content

import "github.com/google/uuid"

// SectionData is one section's raw content: a nested mapping of string keys to
// strings, numbers, booleans, nested mappings, or sequences thereof. The shape
// is not fixed; sections saved by different form versions carry different keys.
type SectionData map[string]any

// Bundle is the resolved, in-memory aggregate of one client's content across
// all known storage locations. Constructed fresh per export session and never
// persisted.
type Bundle struct {
	ClientID uuid.UUID              `json:"client_id"`
	Settings map[string]SectionData `json:"settings"`
	Pages    map[string]SectionData `json:"pages"`
	Content  map[string]SectionData `json:"content"`
}

// NewBundle returns an empty bundle for the given client.
func NewBundle(clientID uuid.UUID) *Bundle {
	return &Bundle{
		ClientID: clientID,
		Settings: make(map[string]SectionData),
		Pages:    make(map[string]SectionData),
		Content:  make(map[string]SectionData),
	}
}

// IsEmpty reports whether resolution yielded nothing at all.
func (b *Bundle) IsEmpty() bool {
	return len(b.Settings) == 0 && len(b.Pages) == 0 && len(b.Content) == 0
}

// SettingsSectionIDs is the fixed set of per-tenant configuration-style
// sections stored under users/{uid}/settings/{sectionId}.
var SettingsSectionIDs = []string{
	"identity",
	"design",
	"colors",
	"typography",
	"logo",
	"contact",
	"social",
	"seo",
	"promoBar",
	"leadGenerator",
	"testimonials",
	"faq",
	"footer",
}

// PageSectionIDs is the fixed set of per-tenant page-content sections stored
// under users/{uid}/pages/{pageId}.
var PageSectionIDs = []string{
	"home",
	"about",
	"services",
	"gallery",
	"team",
	"pricing",
	"reviews",
	"privacy",
	"terms",
}

// Special content ids resolved from legacy or global locations rather than the
// per-tenant settings/pages trees.
const (
	SectionBlog          = "blog"
	SectionLandingPages  = "landingPages"
	SectionDiscoveryCall = "discoveryCall"
	SectionUploads       = "uploads"
	SectionImages        = "images"
)
