package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified *time.Time
}

// Service reads catalog files from remote object storage.
type Service interface {
	ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error)
	Download(ctx context.Context, bucket, key string) ([]byte, error)
}

// IsRemote reports whether location names an object storage URI.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "s3://")
}

// ParseLocation splits an s3://bucket/key URI. The key may be empty or end in "/"
// when the location names a prefix.
func ParseLocation(location string) (bucket, key string, err error) {
	if !IsRemote(location) {
		return "", "", fmt.Errorf("invalid s3 location %q", location)
	}
	rest := strings.TrimPrefix(location, "s3://")
	parts := strings.SplitN(rest, "/", 2)
	if parts[0] == "" {
		return "", "", fmt.Errorf("s3 bucket missing in %q", location)
	}
	if len(parts) == 1 {
		return parts[0], "", nil
	}
	return parts[0], strings.TrimPrefix(parts[1], "/"), nil
}
