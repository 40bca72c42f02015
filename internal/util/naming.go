package util

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"path"
	"regexp"
	"strings"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

const maxNameLength = 120

// TempImageName builds a file-system safe name for a downloaded image from the
// URI's final path segment, prefixed with a short hash of the whole URI so that
// equal segments from different URIs do not collide.
func TempImageName(sourceURI string) string {
	sum := sha256.Sum256([]byte(sourceURI))
	prefix := hex.EncodeToString(sum[:4])

	segment := ""
	if u, err := url.Parse(sourceURI); err == nil {
		segment = path.Base(u.EscapedPath())
	}
	if unescaped, err := url.PathUnescape(segment); err == nil {
		segment = unescaped
	}
	segment = unsafeNameChars.ReplaceAllString(segment, "_")
	segment = strings.Trim(segment, "._")
	if segment == "" {
		segment = "image"
	}
	if len(segment) > maxNameLength {
		segment = segment[len(segment)-maxNameLength:]
	}
	return prefix + "-" + segment
}
