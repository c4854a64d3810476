// Package video resolves metadata for external video links through the
// YouTube Data API. Case links are arbitrary URLs; only recognizable
// YouTube links resolve, everything else reports ErrUnsupportedURL.
package video

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

var (
	ErrUnsupportedURL = errors.New("not a recognizable youtube url")
	ErrVideoNotFound  = errors.New("video not found")
)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?(?:.*&)?v=)([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`(?:youtu\.be/)([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`(?:youtube\.com/(?:embed|shorts)/)([A-Za-z0-9_-]{11})`),
}

// ExtractVideoID pulls the 11-character video id out of the usual
// YouTube URL shapes.
func ExtractVideoID(rawURL string) (string, bool) {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(rawURL); m != nil {
			return m[1], true
		}
	}
	return "", false
}

type Lookup struct {
	service *youtube.Service
}

// NewLookup builds an API-key authenticated client; no OAuth flow is
// needed for public video snippets.
func NewLookup(ctx context.Context, apiKey string) (*Lookup, error) {
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &Lookup{service: service}, nil
}

// Title resolves the video title for a case's video link. It satisfies
// cases.MetadataSource.
func (l *Lookup) Title(ctx context.Context, videoURL string) (string, error) {
	id, ok := ExtractVideoID(videoURL)
	if !ok {
		return "", ErrUnsupportedURL
	}

	resp, err := l.service.Videos.List([]string{"snippet"}).Id(id).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("youtube lookup %s: %w", id, err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return "", ErrVideoNotFound
	}
	return resp.Items[0].Snippet.Title, nil
}
