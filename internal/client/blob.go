package client

import (
	"mime"
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Blob is a downloaded file (analytics exports)
type Blob struct {
	ContentType string
	Filename    string
	Data        []byte
}

// filenameCleaner drops combining marks after decomposition so accented names survive as plain ascii where possible
var filenameCleaner = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// AttachmentFilename returns a filename from a Content-Disposition header that is safe to use as a local file name.
// Returns "" when the header has no filename.
func AttachmentFilename(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return SanitizeFilename(params["filename"])
}

// SanitizeFilename strips any directory part and replaces characters that are not safe in file names
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	if name == "." || name == "/" || name == ".." {
		return ""
	}

	cleaned, _, err := transform.String(filenameCleaner, name)
	if err != nil {
		cleaned = name
	}

	var b strings.Builder
	for _, r := range cleaned {
		switch {
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('_')
		}
	}

	return strings.TrimLeft(b.String(), ".")
}
