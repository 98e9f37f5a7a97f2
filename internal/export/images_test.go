package export

import (
	"testing"

	"content-portal/internal/domain/content"

	"github.com/stretchr/testify/assert"
)

func TestIsImageRef(t *testing.T) {
	assert.True(t, IsImageRef("https://cdn.example.com/photo.png"))
	assert.True(t, IsImageRef("http://cdn.example.com/photo.JPG"))
	assert.True(t, IsImageRef("https://cdn.example.com/photo.webp?w=800"))
	assert.True(t, IsImageRef("data:image/png;base64,iVBORw0KGgo="))
	assert.True(t, IsImageRef("https://bucket.s3.amazonaws.com/uploads/logo"))

	assert.False(t, IsImageRef("https://example.com/page"))
	assert.False(t, IsImageRef("photo.png"))
	assert.False(t, IsImageRef("just some text"))
}

func TestFindImages_NestedAndDeduplicated(t *testing.T) {
	data := content.SectionData{
		"logoUrl": "https://cdn.example.com/logo.png",
		"gallery": []any{
			map[string]any{"url": "https://cdn.example.com/a.jpg"},
			map[string]any{"url": "https://cdn.example.com/logo.png"},
		},
		"nested": map[string]any{
			"deep": map[string]any{"banner": "https://cdn.example.com/banner.gif"},
		},
		"copy": "no image here",
	}

	refs := FindImages(data)
	assert.ElementsMatch(t, []string{
		"https://cdn.example.com/logo.png",
		"https://cdn.example.com/a.jpg",
		"https://cdn.example.com/banner.gif",
	}, refs)
}

func TestFindImages_StableOrder(t *testing.T) {
	data := content.SectionData{
		"b": "https://cdn.example.com/b.png",
		"a": "https://cdn.example.com/a.png",
	}

	first := FindImages(data)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, FindImages(data))
	}
	assert.Equal(t, []string{"https://cdn.example.com/a.png", "https://cdn.example.com/b.png"}, first)
}

func TestFindImages_DoesNotMutateInput(t *testing.T) {
	data := content.SectionData{"logoUrl": "https://cdn.example.com/logo.png"}
	FindImages(data)
	assert.Equal(t, content.SectionData{"logoUrl": "https://cdn.example.com/logo.png"}, data)
}

func TestFindImages_Empty(t *testing.T) {
	assert.Empty(t, FindImages(nil))
	assert.Empty(t, FindImages(content.SectionData{"copy": "text only"}))
}
