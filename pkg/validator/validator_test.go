package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	assert.NoError(t, Email("ada@example.com"))
	assert.NoError(t, Email("first.last+tag@sub.example.co"))

	assert.Error(t, Email(""))
	assert.Error(t, Email("not-an-email"))
	assert.Error(t, Email("missing@tld"))
	assert.Error(t, Email(strings.Repeat("a", 250)+"@example.com"))
}

func TestPassword(t *testing.T) {
	assert.NoError(t, Password("sup3rsecret"))
	assert.Error(t, Password("short"))
	assert.Error(t, Password(strings.Repeat("x", 129)))
}

func TestDisplayName(t *testing.T) {
	assert.NoError(t, DisplayName("Dr. Ada"))
	assert.Error(t, DisplayName(""))
	assert.Error(t, DisplayName("   "))
	assert.Error(t, DisplayName(strings.Repeat("n", 256)))
}

func TestSectionID(t *testing.T) {
	assert.NoError(t, SectionID("faq"))
	assert.NoError(t, SectionID("promoBar"))
	assert.NoError(t, SectionID("landingPages"))

	assert.Error(t, SectionID(""))
	assert.Error(t, SectionID("9lives"))
	assert.Error(t, SectionID("has-dash"))
	assert.Error(t, SectionID("has.dot"))
	assert.Error(t, SectionID("has space"))
	assert.Error(t, SectionID(strings.Repeat("s", 65)))
}

func TestFileName(t *testing.T) {
	assert.NoError(t, FileName("logo.png"))
	assert.NoError(t, FileName("team photo (2).jpg"))

	assert.Error(t, FileName(""))
	assert.Error(t, FileName("a/b.png"))
	assert.Error(t, FileName(`a\b.png`))
	assert.Error(t, FileName("bad\x00name.png"))
	assert.Error(t, FileName(strings.Repeat("f", 256)))
}

func TestImageUpload(t *testing.T) {
	assert.NoError(t, ImageUpload("image/png", 1024))
	assert.NoError(t, ImageUpload("IMAGE/JPEG", 1024))

	assert.Error(t, ImageUpload("text/plain", 1024))
	assert.Error(t, ImageUpload("image/png", -1))
	assert.Error(t, ImageUpload("image/png", 11*1024*1024))
}
