package handler

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"
)

// decodeBodyLimit caps how much of a request body the strict decoder reads.
// Larger payloads (image uploads) arrive as multipart, never JSON.
const decodeBodyLimit int64 = 1 << 20

// bindStrictJSON decodes the request body into dst. Wrong content types,
// unknown fields and trailing bytes after the document are all rejected, so
// a malformed intake form fails loudly instead of half-binding.
func bindStrictJSON(c echo.Context, dst any) error {
	mediaType, _, err := mime.ParseMediaType(c.Request().Header.Get(echo.HeaderContentType))
	if err != nil || mediaType != echo.MIMEApplicationJSON {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, msgContentTypeJSONRequired)
	}

	dec := json.NewDecoder(io.LimitReader(c.Request().Body, decodeBodyLimit))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequestBody)
	}
	if dec.More() {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequestBody)
	}

	return nil
}
