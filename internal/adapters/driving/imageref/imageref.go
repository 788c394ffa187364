// Package imageref turns user-supplied image references into values the hub
// accepts for image queries.
package imageref

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/framescope/internal/core/domain"
)

// IsRemote reports whether ref is already a URL or data URI.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "data:") ||
		strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://")
}

// Resolve passes URLs and data URIs through and encodes local files as
// base64 data URIs.
func Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", domain.ErrImageRequired
	}
	if IsRemote(ref) {
		return ref, nil
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}
	mediaType := mime.TypeByExtension(strings.ToLower(filepath.Ext(ref)))
	if mediaType == "" {
		mediaType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return "", fmt.Errorf("%w: %s is not an image (%s)", domain.ErrInvalidInput, ref, mediaType)
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
