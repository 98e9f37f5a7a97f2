package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/http/httptest"
	"testing"

	"content-portal/internal/auth"
	"content-portal/pkg/cache"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type fakeBlobStore struct {
	uploads map[string][]byte
	err     error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{uploads: make(map[string][]byte)}
}

func (f *fakeBlobStore) Upload(src io.Reader, objectKey, _ string) error {
	if f.err != nil {
		return f.err
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}
	f.uploads[objectKey] = data
	return nil
}

func (f *fakeBlobStore) SignedURL(objectKey string, _ *cache.URLCache) (string, error) {
	return "https://blobs.example.com/" + objectKey + "?sig=abc", nil
}

func multipartImageRequest(t *testing.T, e *echo.Echo, filename, contentType string, payload []byte) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	assert.NoError(t, err)
	_, err = part.Write(payload)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/content/uploads/images", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUploadImage(t *testing.T) {
	e := echo.New()
	store := newFakeBlobStore()
	docs := newMemoryDocs()
	h := NewUploadHandler(store, docs, cache.NewURLCache(), nopAudit{})
	uid := uuid.New()

	c, rec := multipartImageRequest(t, e, "logo.png", "image/png", []byte("png-bytes"))
	c.Set(auth.ContextKeyUserID, uid)

	assert.NoError(t, h.UploadImage(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp UploadImageResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.ObjectKey, "users/"+uid.String()+"/uploads/")
	assert.Contains(t, resp.URL, resp.ObjectKey)
	assert.Equal(t, []byte("png-bytes"), store.uploads[resp.ObjectKey])

	manifest, ok := docs.docs["users/"+uid.String()+"/uploads/images"]
	assert.True(t, ok)
	images, _ := manifest["images"].([]any)
	assert.Len(t, images, 1)
	assert.Equal(t, resp.URL, images[0])
}

func TestUploadImage_AppendsToExistingManifest(t *testing.T) {
	e := echo.New()
	store := newFakeBlobStore()
	docs := newMemoryDocs()
	h := NewUploadHandler(store, docs, cache.NewURLCache(), nopAudit{})
	uid := uuid.New()

	first, _ := multipartImageRequest(t, e, "one.png", "image/png", []byte("a"))
	first.Set(auth.ContextKeyUserID, uid)
	assert.NoError(t, h.UploadImage(first))

	second, _ := multipartImageRequest(t, e, "two.jpg", "image/jpeg", []byte("b"))
	second.Set(auth.ContextKeyUserID, uid)
	assert.NoError(t, h.UploadImage(second))

	manifest := docs.docs["users/"+uid.String()+"/uploads/images"]
	images, _ := manifest["images"].([]any)
	assert.Len(t, images, 2)
}

func TestUploadImage_MissingField(t *testing.T) {
	e := echo.New()
	h := NewUploadHandler(newFakeBlobStore(), newMemoryDocs(), cache.NewURLCache(), nopAudit{})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/content/uploads/images", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(auth.ContextKeyUserID, uuid.New())

	assert.NoError(t, h.UploadImage(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadImage_RejectsNonImageType(t *testing.T) {
	e := echo.New()
	h := NewUploadHandler(newFakeBlobStore(), newMemoryDocs(), cache.NewURLCache(), nopAudit{})

	c, rec := multipartImageRequest(t, e, "notes.txt", "text/plain", []byte("hello"))
	c.Set(auth.ContextKeyUserID, uuid.New())

	assert.NoError(t, h.UploadImage(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
