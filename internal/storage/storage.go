// Package storage uploads project images to an object store and hands back
// their public URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ErrNotImage is returned when an upload does not sniff as an image.
var ErrNotImage = errors.New("file is not an image")

// ImageStore stores image bytes under a key.
type ImageStore interface {
	// Upload stores body under key and returns its public URL.
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// DetectImage sniffs data and returns its MIME type and file extension.
// The declared content type of the upload is not trusted.
func DetectImage(data []byte) (contentType, ext string, err error) {
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", "", fmt.Errorf("%w: detected %s", ErrNotImage, mt.String())
	}
	return mt.String(), mt.Extension(), nil
}

// ObjectKey builds a unique key such as "projects/bakery-site-<uuid>.png".
func ObjectKey(prefix, title, ext string) string {
	name := slug.Make(title)
	if name == "" {
		name = "image"
	}
	if len(name) > 60 {
		name = strings.Trim(name[:60], "-")
	}
	return fmt.Sprintf("%s/%s-%s%s", prefix, name, uuid.New().String(), ext)
}
