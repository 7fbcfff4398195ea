package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/framearchive/framearchive/internal/domain"
	"github.com/framearchive/framearchive/internal/store"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listFrames",
		Method:      http.MethodGet,
		Path:        "/api/frame-list",
		Summary:     "List frames",
		Description: "Returns catalog entries newest first. A search term takes precedence over a tag filter.",
		Tags:        []string{"Frames"},
	}, s.handleListFrames)

	huma.Register(s.api, huma.Operation{
		OperationID: "getFrame",
		Method:      http.MethodGet,
		Path:        "/api/frame-list/{id}",
		Summary:     "Get frame",
		Description: "Returns a single catalog entry by ID",
		Tags:        []string{"Frames"},
	}, s.handleGetFrame)

	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/tags",
		Summary:     "List tags",
		Description: "Returns every filterable tag. The reserved \"all\" tag is never listed.",
		Tags:        []string{"Tags"},
	}, s.handleListTags)
}

// === DTOs ===

// ListFramesInput contains parameters for listing frames.
type ListFramesInput struct {
	Tag    string `query:"tag" doc:"Tag slug to filter by; empty or \"all\" lists everything"`
	Search string `query:"search" maxLength:"200" doc:"Case-insensitive substring of name or creator"`
}

// FrameResponse contains entry data in API responses.
type FrameResponse struct {
	ID                string    `json:"id" doc:"Frame ID"`
	Name              string    `json:"name" doc:"Display name"`
	CreatorName       string    `json:"creator_name" doc:"Author display name"`
	CreatorProfileURL string    `json:"creator_profile_url,omitempty" doc:"Author profile link"`
	URL               string    `json:"url" doc:"URL of the hosted frame"`
	IconURL           string    `json:"icon_url,omitempty" doc:"Icon image URL"`
	Description       string    `json:"description,omitempty" doc:"Short description"`
	CreatedAt         time.Time `json:"created_at" doc:"Insertion time"`
}

// ListFramesResponse contains a list of frames.
type ListFramesResponse struct {
	Frames []FrameResponse `json:"frames" doc:"Frames, newest first"`
}

// ListFramesOutput wraps the list frames response for Huma.
type ListFramesOutput struct {
	Body ListFramesResponse
}

// GetFrameInput contains parameters for getting a frame.
type GetFrameInput struct {
	ID string `path:"id" doc:"Frame ID"`
}

// FrameEnvelope wraps a single frame.
type FrameEnvelope struct {
	Frame FrameResponse `json:"frame"`
}

// FrameOutput wraps the frame response for Huma.
type FrameOutput struct {
	Body FrameEnvelope
}

// TagResponse contains tag data in API responses.
type TagResponse struct {
	ID        string    `json:"id" doc:"Tag ID"`
	Name      string    `json:"name" doc:"Tag name"`
	Slug      string    `json:"slug" doc:"URL-safe slug used as the filter key"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
}

// ListTagsResponse contains a list of tags.
type ListTagsResponse struct {
	Tags []TagResponse `json:"tags" doc:"List of tags"`
}

// ListTagsOutput wraps the list tags response for Huma.
type ListTagsOutput struct {
	Body ListTagsResponse
}

// === Handlers ===

func (s *Server) handleListFrames(ctx context.Context, input *ListFramesInput) (*ListFramesOutput, error) {
	entries, err := s.services.Catalog.ListEntries(ctx, store.EntryFilter{
		TagSlug: input.Tag,
		Search:  input.Search,
	})
	if err != nil {
		return nil, err
	}

	frames := make([]FrameResponse, len(entries))
	for i, e := range entries {
		frames[i] = toFrameResponse(e)
	}

	return &ListFramesOutput{Body: ListFramesResponse{Frames: frames}}, nil
}

func (s *Server) handleGetFrame(ctx context.Context, input *GetFrameInput) (*FrameOutput, error) {
	entry, err := s.services.Catalog.GetEntry(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &FrameOutput{Body: FrameEnvelope{Frame: toFrameResponse(entry)}}, nil
}

func (s *Server) handleListTags(ctx context.Context, _ *struct{}) (*ListTagsOutput, error) {
	tags, err := s.services.Catalog.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]TagResponse, len(tags))
	for i, t := range tags {
		resp[i] = TagResponse{
			ID:        t.ID,
			Name:      t.Name,
			Slug:      t.Slug,
			CreatedAt: t.CreatedAt,
		}
	}

	return &ListTagsOutput{Body: ListTagsResponse{Tags: resp}}, nil
}

func toFrameResponse(e *domain.Entry) FrameResponse {
	return FrameResponse{
		ID:                e.ID,
		Name:              e.Name,
		CreatorName:       e.CreatorName,
		CreatorProfileURL: e.CreatorProfileURL,
		URL:               e.SourceURL,
		IconURL:           e.IconURL,
		Description:       e.Description,
		CreatedAt:         e.CreatedAt,
	}
}
