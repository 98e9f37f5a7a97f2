package validator

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	minEmailLength    = 3
	maxEmailLength    = 255
	minPasswordLength = 8
	maxPasswordLength = 128
	maxNameLength     = 255
	maxSectionIDLen   = 64
	maxFileNameLen    = 255
	maxImageSizeBytes = int64(10 * 1024 * 1024)
	asciiControlStart = 32
	asciiDelete       = 127

	errEmailEmptyFmt           = "email cannot be empty"
	errEmailLengthFmt          = "email must be between %d and %d characters"
	errEmailInvalidFmt         = "invalid email format"
	errPasswordMinLengthFmt    = "password must be at least %d characters"
	errPasswordMaxLengthFmt    = "password must not exceed %d characters"
	errNameEmptyFmt            = "display name cannot be empty"
	errNameMaxLengthFmt        = "display name must not exceed %d characters"
	errSectionIDEmptyFmt       = "section id cannot be empty"
	errSectionIDMaxLengthFmt   = "section id must not exceed %d characters"
	errSectionIDFormatFmt      = "section id must contain only letters and digits"
	errFileNameEmptyFmt        = "file name cannot be empty"
	errFileNameMaxLengthFmt    = "file name must not exceed %d characters"
	errFileNamePathSepFmt      = "file name cannot contain path separators"
	errFileNameControlCharsFmt = "file name cannot contain control characters"
	errImageTypeFmt            = "unsupported image type: %s"
	errImageSizeNegativeFmt    = "image size cannot be negative"
	errImageSizeMaxFmt         = "image size exceeds maximum of %d bytes"
)

var (
	emailRegex     = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	sectionIDRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]*$`)

	allowedImageTypes = map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
)

func Email(email string) error {
	if email == "" {
		return fmt.Errorf(errEmailEmptyFmt)
	}
	if len(email) < minEmailLength || len(email) > maxEmailLength {
		return fmt.Errorf(errEmailLengthFmt, minEmailLength, maxEmailLength)
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf(errEmailInvalidFmt)
	}
	return nil
}

func Password(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf(errPasswordMinLengthFmt, minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf(errPasswordMaxLengthFmt, maxPasswordLength)
	}
	return nil
}

func DisplayName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf(errNameEmptyFmt)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf(errNameMaxLengthFmt, maxNameLength)
	}
	return nil
}

func SectionID(id string) error {
	if id == "" {
		return fmt.Errorf(errSectionIDEmptyFmt)
	}
	if len(id) > maxSectionIDLen {
		return fmt.Errorf(errSectionIDMaxLengthFmt, maxSectionIDLen)
	}
	if !sectionIDRegex.MatchString(id) {
		return fmt.Errorf(errSectionIDFormatFmt)
	}
	return nil
}

func FileName(name string) error {
	if name == "" {
		return fmt.Errorf(errFileNameEmptyFmt)
	}
	if len(name) > maxFileNameLen {
		return fmt.Errorf(errFileNameMaxLengthFmt, maxFileNameLen)
	}
	if strings.ContainsAny(name, "/\\") {
		return fmt.Errorf(errFileNamePathSepFmt)
	}
	for _, r := range name {
		if r < asciiControlStart || r == asciiDelete {
			return fmt.Errorf(errFileNameControlCharsFmt)
		}
	}
	return nil
}

// ImageUpload checks the declared content type and size of an uploaded image.
func ImageUpload(contentType string, size int64) error {
	if !allowedImageTypes[strings.ToLower(contentType)] {
		return fmt.Errorf(errImageTypeFmt, contentType)
	}
	if size < 0 {
		return fmt.Errorf(errImageSizeNegativeFmt)
	}
	if size > maxImageSizeBytes {
		return fmt.Errorf(errImageSizeMaxFmt, maxImageSizeBytes)
	}
	return nil
}
