package cases

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("case not found")

// MetadataSource resolves a human title for an external video link.
// Optional; the service works without one.
type MetadataSource interface {
	Title(ctx context.Context, videoURL string) (string, error)
}

type Service struct {
	repo     Repository
	meta     MetadataSource
	location *time.Location
}

func NewService(repo Repository, location *time.Location) *Service {
	return &Service{
		repo:     repo,
		location: location,
	}
}

// WithMetadata enables description enrichment from a video metadata
// source at create time.
func (s *Service) WithMetadata(meta MetadataSource) *Service {
	s.meta = meta
	return s
}

// Create assigns a fresh id (ObjectID hex, time-prefixed so ids sort
// roughly by creation time) and stores the case. When a metadata
// source is configured and the draft has no description, the video
// title fills it in; lookup failures are ignored.
func (s *Service) Create(ctx context.Context, draft Draft) (VideoCase, error) {
	now := time.Now().In(s.location)

	item := VideoCase{
		ID:          primitive.NewObjectID().Hex(),
		Category:    strings.TrimSpace(draft.Category),
		Subcategory: strings.TrimSpace(draft.Subcategory),
		Region:      strings.TrimSpace(draft.Region),
		RobotType:   strings.TrimSpace(draft.RobotType),
		ClientName:  strings.TrimSpace(draft.ClientName),
		VideoURL:    strings.TrimSpace(draft.VideoURL),
		Rating:      draft.Rating,
		Keywords:    SplitKeywords(JoinKeywords(draft.Keywords)),
		Description: strings.TrimSpace(draft.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if item.Description == "" && item.VideoURL != "" && s.meta != nil {
		if title, err := s.meta.Title(ctx, item.VideoURL); err == nil {
			item.Description = title
		}
	}

	if err := s.repo.Insert(ctx, item); err != nil {
		return VideoCase{}, err
	}
	return item, nil
}

// Update replaces the stored record wholesale, keyed by id.
func (s *Service) Update(ctx context.Context, item VideoCase) (VideoCase, error) {
	item.ID = strings.TrimSpace(item.ID)
	if item.ID == "" {
		return VideoCase{}, ErrNotFound
	}
	item.Category = strings.TrimSpace(item.Category)
	item.Subcategory = strings.TrimSpace(item.Subcategory)
	item.Region = strings.TrimSpace(item.Region)
	item.RobotType = strings.TrimSpace(item.RobotType)
	item.ClientName = strings.TrimSpace(item.ClientName)
	item.VideoURL = strings.TrimSpace(item.VideoURL)
	item.Keywords = SplitKeywords(JoinKeywords(item.Keywords))
	item.Description = strings.TrimSpace(item.Description)
	item.UpdatedAt = time.Now().In(s.location)

	replaced, err := s.repo.Replace(ctx, item)
	if err != nil {
		return VideoCase{}, err
	}
	if !replaced {
		return VideoCase{}, ErrNotFound
	}
	return item, nil
}

// Delete removes the case with the given id. Unknown ids are a no-op,
// matching the protocol's delete semantics.
func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	return err
}

// List returns the full collection, newest first.
func (s *Service) List(ctx context.Context) ([]VideoCase, error) {
	return s.repo.List(ctx)
}
