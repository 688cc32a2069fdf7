package domain

import (
	"context"
	"io"
	"strings"
)

// AssetKind selects the bucket folder an asset lives in.
type AssetKind string

const (
	AssetImage AssetKind = "image"
	AssetVideo AssetKind = "video"
)

func ParseAssetKind(s string) (AssetKind, error) {
	switch AssetKind(strings.ToLower(strings.TrimSuffix(s, "s"))) {
	case AssetImage:
		return AssetImage, nil
	case AssetVideo:
		return AssetVideo, nil
	}
	return "", ErrInvalidKind
}

// Folder is the key prefix of the kind inside the bucket.
func (k AssetKind) Folder() string {
	return string(k) + "s"
}

// Variant is one displayable rendition of a portfolio entry.
type Variant string

const (
	VariantThumbnail Variant = "thumbnail"
	VariantOriginal  Variant = "original"
	VariantVideo     Variant = "video"
)

// AssetStore resolves, stores and removes files in the asset bucket.
type AssetStore interface {
	ResolveURL(ctx context.Context, path string, kind AssetKind) (string, error)
	Upload(ctx context.Context, body io.Reader, name string, contentType string, kind AssetKind) (string, error)
	Delete(ctx context.Context, path string, kind AssetKind) error
}

// IsAbsoluteURL reports whether a stored path is already a full URL.
func IsAbsoluteURL(path string) bool {
	return strings.HasPrefix(path, "http")
}
