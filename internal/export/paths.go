package export

import "github.com/google/uuid"

// Document paths mirror the portal's original storage layout. Several
// generations of the intake forms wrote to different locations, so the
// resolver probes all of them.
const (
	landingPagesPath  = "pages/landingPages"
	discoveryCallPath = "elements/discoveryCall"
	adminSettingsID   = "adminSettings"
)

func userPath(uid uuid.UUID) string {
	return "users/" + uid.String()
}

func settingsPath(uid uuid.UUID, sectionID string) string {
	return userPath(uid) + "/settings/" + sectionID
}

func pagePath(uid uuid.UUID, pageID string) string {
	return userPath(uid) + "/pages/" + pageID
}

func blogPostsPath(uid uuid.UUID) string {
	return userPath(uid) + "/blog/posts"
}

func uploadsPath(uid uuid.UUID) string {
	return userPath(uid) + "/uploads/images"
}

func adminSettingsPath(adminUID uuid.UUID) string {
	return settingsPath(adminUID, adminSettingsID)
}
