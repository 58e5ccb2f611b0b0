package image

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"time"
)

var avatarClient = &http.Client{Timeout: 15 * time.Second}

// FetchAvatar downloads and decodes a member's avatar. Failures propagate to
// the caller; renderers accept a nil image when the caller decides to render
// without one.
func FetchAvatar(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build avatar request: %w", err)
	}
	resp, err := avatarClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch avatar: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch avatar: status %d", resp.StatusCode)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode avatar: %w", err)
	}
	return img, nil
}
