package export

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"content-portal/internal/domain/content"

	"go.uber.org/zap"
)

// Format selects the export artifact type.
type Format string

const (
	FormatZip  Format = "zip"
	FormatJSON Format = "json"
	FormatTxt  Format = "txt"
)

// bundleExportID names whole-bundle artifacts.
const bundleExportID = "all-sections"

// Artifact is one downloadable export: bytes plus the metadata the browser's
// save-file mechanism needs. Never persisted server-side.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ImageFetcher retrieves image bytes for a reference. Object-storage URLs are
// re-resolved to a fresh signed URL before the fetch; plain http(s) URLs are
// fetched directly.
type ImageFetcher interface {
	FetchImage(ctx context.Context, ref string) (data []byte, contentType string, err error)
}

// Builder produces export artifacts for one section or a whole bundle.
type Builder struct {
	fetcher ImageFetcher
	logger  *zap.Logger
}

func NewBuilder(fetcher ImageFetcher, logger *zap.Logger) *Builder {
	return &Builder{fetcher: fetcher, logger: logger}
}

// Export builds the artifact for sectionID's resolved data using cfg.
func (b *Builder) Export(ctx context.Context, sectionID string, data any, cfg Settings) (*Artifact, error) {
	displayName := Title(sectionID)

	switch cfg.ExportFormat {
	case FormatJSON:
		encoded, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode section %s: %w", sectionID, err)
		}
		return &Artifact{
			Filename:    exportFilename(sectionID, "json"),
			ContentType: "application/json",
			Data:        encoded,
		}, nil

	case FormatTxt:
		var text strings.Builder
		FormatGeneric(&text, data, 0)
		return &Artifact{
			Filename:    exportFilename(sectionID, "txt"),
			ContentType: "text/plain",
			Data:        []byte(text.String()),
		}, nil

	default:
		archive, err := b.buildZip(ctx, displayName, data, cfg)
		if err != nil {
			return nil, err
		}
		return &Artifact{
			Filename:    exportFilename(sectionID, "zip"),
			ContentType: "application/zip",
			Data:        archive,
		}, nil
	}
}

// ExportBundle builds one artifact covering every section that has data, in
// catalog order.
func (b *Builder) ExportBundle(ctx context.Context, bundle *content.Bundle, cfg Settings) (*Artifact, error) {
	sections := make(map[string]any)
	ordered := make([]string, 0, len(Catalog))
	for _, info := range ListSections(bundle) {
		if !info.HasData {
			continue
		}
		data, ok := SectionData(bundle, info.ID)
		if !ok {
			continue
		}
		sections[info.ID] = data
		ordered = append(ordered, info.ID)
	}

	switch cfg.ExportFormat {
	case FormatJSON:
		encoded, err := json.MarshalIndent(sections, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode bundle: %w", err)
		}
		return &Artifact{
			Filename:    exportFilename(bundleExportID, "json"),
			ContentType: "application/json",
			Data:        encoded,
		}, nil

	case FormatTxt:
		var text strings.Builder
		for _, id := range ordered {
			text.WriteString(FormatSection(sections[id], Title(id)))
			text.WriteString("\n")
		}
		return &Artifact{
			Filename:    exportFilename(bundleExportID, "txt"),
			ContentType: "text/plain",
			Data:        []byte(text.String()),
		}, nil

	default:
		var summary strings.Builder
		for _, id := range ordered {
			summary.WriteString(Summary(sections[id], Title(id)))
			summary.WriteString("\n")
		}
		archive, err := b.buildZipWithText(ctx, summary.String(), sections, cfg)
		if err != nil {
			return nil, err
		}
		return &Artifact{
			Filename:    exportFilename(bundleExportID, "zip"),
			ContentType: "application/zip",
			Data:        archive,
		}, nil
	}
}

func (b *Builder) buildZip(ctx context.Context, displayName string, data any, cfg Settings) ([]byte, error) {
	return b.buildZipWithText(ctx, Summary(data, displayName), data, cfg)
}

func (b *Builder) buildZipWithText(ctx context.Context, text string, data any, cfg Settings) ([]byte, error) {
	var out bytes.Buffer
	zw := zip.NewWriter(&out)

	level := cfg.FlateLevel()
	method := zip.Store
	if level > 0 {
		method = zip.Deflate
		zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(w, level)
		})
	}

	entry, err := zw.CreateHeader(&zip.FileHeader{Name: "content.txt", Method: method})
	if err != nil {
		return nil, fmt.Errorf("failed to create content entry: %w", err)
	}
	if _, err := entry.Write([]byte(text)); err != nil {
		return nil, fmt.Errorf("failed to write content entry: %w", err)
	}

	if cfg.IncludeImages {
		b.addImages(ctx, zw, method, data)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return out.Bytes(), nil
}

// addImages fetches every discovered image reference and stores the ones that
// succeed. A failed fetch is logged and skipped; the archive is still
// produced with whatever images arrived.
func (b *Builder) addImages(ctx context.Context, zw *zip.Writer, method uint16, data any) {
	refs := FindImages(data)
	n := 0

	for _, ref := range refs {
		imageData, contentType, err := b.fetchRef(ctx, ref)
		if err != nil {
			b.logger.Warn("image fetch failed", zap.String("ref", truncateRef(ref)), zap.Error(err))
			continue
		}

		n++
		name := fmt.Sprintf("images/image-%d.%s", n, extensionFor(contentType))
		entry, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method})
		if err != nil {
			b.logger.Warn("image entry failed", zap.String("name", name), zap.Error(err))
			n--
			continue
		}
		if _, err := entry.Write(imageData); err != nil {
			b.logger.Warn("image write failed", zap.String("name", name), zap.Error(err))
		}
	}
}

// fetchRef resolves one image reference to bytes. Base64 data URIs decode
// locally without a network fetch.
func (b *Builder) fetchRef(ctx context.Context, ref string) ([]byte, string, error) {
	if strings.HasPrefix(ref, dataURIPrefix) {
		return decodeDataURI(ref)
	}
	return b.fetcher.FetchImage(ctx, ref)
}

func decodeDataURI(uri string) ([]byte, string, error) {
	comma := strings.Index(uri, ",")
	if comma < 0 {
		return nil, "", fmt.Errorf("malformed data URI")
	}

	header := uri[len("data:"):comma]
	contentType := header
	if semi := strings.Index(header, ";"); semi >= 0 {
		contentType = header[:semi]
	}

	data, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode data URI: %w", err)
	}

	return data, contentType, nil
}

// extensionFor maps a fetched blob's MIME type to a file extension.
func extensionFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	case "image/jpeg", "image/jpg":
		return "jpg"
	default:
		return "jpg"
	}
}

// exportFilename builds <sectionId>-<ISO8601 timestamp with colons and dots
// stripped>.<ext>, e.g. about-2024-01-01T00-00-00-000Z.json.
func exportFilename(sectionID, ext string) string {
	return sectionID + "-" + exportTimestamp(time.Now().UTC()) + "." + ext
}

func exportTimestamp(t time.Time) string {
	stamp := t.Format("2006-01-02T15:04:05.000Z")
	stamp = strings.ReplaceAll(stamp, ":", "-")
	stamp = strings.ReplaceAll(stamp, ".", "-")
	return stamp
}

func truncateRef(ref string) string {
	const max = 120
	if len(ref) > max {
		return ref[:max] + "..."
	}
	return ref
}
