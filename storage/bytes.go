package storage

import (
	"context"
	"fmt"
	"io"
)

// ErrTooLarge is returned by ReadFile when an object exceeds the cap.
var ErrTooLarge = fmt.Errorf("storage: object too large")

// ReadFile downloads path fully, failing with ErrTooLarge past maxBytes.
// maxBytes <= 0 means no cap. The object is stat'ed first so oversized or
// missing objects are rejected without a download.
func ReadFile(ctx context.Context, s Storage, path string, maxBytes int64) ([]byte, error) {
	info, err := s.Stat(ctx, path)
	if err != nil {
		return nil, err
	}
	if maxBytes > 0 && info.Size > maxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes, cap %d", ErrTooLarge, path, info.Size, maxBytes)
	}

	rc, err := s.Download(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	r := io.Reader(rc)
	if maxBytes > 0 {
		r = io.LimitReader(rc, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", path, err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, path, maxBytes)
	}
	return data, nil
}
