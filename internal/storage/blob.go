package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
)

// BlobStore holds uploaded worksheet scans. Keys are slash-separated
// and relative; implementations must never escape their base.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader) (string, error) // returns canonical key
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	URL(key string) (string, error) // fs returns "file://..." for dev
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// ScanKey builds the canonical key for a worksheet photo uploaded by a
// child against a submission. The original filename is sanitized but
// kept so parents recognize the file in reviews.
func ScanKey(childID, submissionID, filename string) string {
	name := unsafeKeyChars.ReplaceAllString(path.Base(filename), "_")
	if name == "" || name == "." {
		name = "scan"
	}
	return fmt.Sprintf("worksheets/%s/%s/%s", childID, submissionID, name)
}

// CleanKey rejects keys that try to climb out of the store.
func CleanKey(key string) (string, error) {
	if strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	if key == "" || key == "." {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return key, nil
}
