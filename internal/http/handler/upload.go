package handler

import (
	"errors"
	"io"
	"net/http"

	"content-portal/internal/audit"
	"content-portal/internal/auth"
	"content-portal/internal/domain/content"
	"content-portal/pkg/blob"
	"content-portal/pkg/cache"
	apperrors "content-portal/pkg/errors"
	"content-portal/pkg/validator"

	"github.com/labstack/echo/v4"
)

// BlobUploader is the object-storage surface the upload handler needs.
type BlobUploader interface {
	Upload(src io.Reader, objectKey, contentType string) error
	SignedURL(objectKey string, urlCache *cache.URLCache) (string, error)
}

type UploadHandler struct {
	store    BlobUploader
	docs     DocumentStore
	urlCache *cache.URLCache
	auditLog AuditLogger
}

func NewUploadHandler(store BlobUploader, docs DocumentStore, urlCache *cache.URLCache, auditLog AuditLogger) *UploadHandler {
	return &UploadHandler{store: store, docs: docs, urlCache: urlCache, auditLog: auditLog}
}

type UploadImageResponse struct {
	ObjectKey string `json:"object_key"`
	URL       string `json:"url"`
}

// UploadImage stores an image in the blob store and records it in the
// client's uploads manifest so the export image locator finds it.
func (h *UploadHandler) UploadImage(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	fileHeader, err := c.FormFile(formFieldImage)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgImageFieldRequired)
	}

	if err := validator.FileName(fileHeader.Filename); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	contentType := fileHeader.Header.Get(echo.HeaderContentType)
	if err := validator.ImageUpload(contentType, fileHeader.Size); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	src, err := fileHeader.Open()
	if err != nil {
		return RespondWithMappedError(c, apperrors.InternalServer("failed to read upload", err))
	}
	defer src.Close()

	objectKey := blob.BuildObjectKey("users/"+userID.String()+"/uploads", fileHeader.Filename)
	if err := h.store.Upload(src, objectKey, contentType); err != nil {
		h.auditLog.LogError(c, audit.ResourceTypeUpload, objectKey, audit.ActionCreate, err)
		return RespondWithMappedError(c, err)
	}

	url, err := h.store.SignedURL(objectKey, h.urlCache)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	if err := h.appendToManifest(c, userID.String(), url); err != nil {
		// The blob exists; a manifest miss only hides it from exports.
		c.Logger().Warnf("uploads manifest update failed for %s: %v", objectKey, err)
	}

	h.auditLog.LogFromContext(c, audit.ResourceTypeUpload, objectKey, audit.ActionCreate, audit.StatusSuccess,
		map[string]any{"content_type": contentType, "size": fileHeader.Size})

	return c.JSON(http.StatusCreated, UploadImageResponse{ObjectKey: objectKey, URL: url})
}

func (h *UploadHandler) appendToManifest(c echo.Context, uid, url string) error {
	ctx := c.Request().Context()
	path := "users/" + uid + "/uploads/images"

	manifest, err := h.docs.Get(ctx, path)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		manifest = content.SectionData{}
	}

	images, _ := manifest["images"].([]any)
	manifest["images"] = append(images, url)

	return h.docs.Put(ctx, path, manifest)
}
