package service

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"

	"github.com/framearchive/framearchive/internal/domain"
	domainerrors "github.com/framearchive/framearchive/internal/errors"
	"github.com/framearchive/framearchive/internal/store"
)

// LegacyPageSize caps how many entries one legacy card lists.
const LegacyPageSize = 6

// maxLegacySearchRunes bounds the search text taken from a card's input.
// Longer input is cut, not rejected.
const maxLegacySearchRunes = 200

// Legacy card copy and layout.
const (
	legacyMoreLabel   = "More Frames"
	legacySearchLabel = "Search frames..."
	legacyAspectRatio = "1.91:1"
	msgLegacyFailed   = "Failed to handle frame action"
)

// Legacy button actions.
const (
	ActionLink = "link"
	ActionPost = "post"
)

// LegacyAction is a button press from an older card client.
type LegacyAction struct {
	ButtonIndex int
	InputText   string
}

// LegacyButton is one action on a card.
type LegacyButton struct {
	Label  string `json:"label" doc:"Button text"`
	Action string `json:"action" enum:"link,post" doc:"link opens target; post calls back into postUrl"`
	Target string `json:"target,omitempty" doc:"URL opened by a link button"`
}

// LegacyImage is the card image reference.
type LegacyImage struct {
	URL         string `json:"url"`
	AspectRatio string `json:"aspectRatio" example:"1.91:1"`
}

// LegacyInputText is the card's text prompt.
type LegacyInputText struct {
	Label string `json:"label"`
}

// LegacyFrameMetadata is the fixed-shape card an older client renders.
type LegacyFrameMetadata struct {
	Buttons   []LegacyButton  `json:"buttons"`
	Image     LegacyImage     `json:"image"`
	PostURL   string          `json:"postUrl"`
	InputText LegacyInputText `json:"inputText"`
}

// LegacyFrameSummary is the short entry form listed next to the card.
type LegacyFrameSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CreatorName string `json:"creator_name"`
}

// LegacyCardResponse answers a legacy action.
type LegacyCardResponse struct {
	Frames        []LegacyFrameSummary `json:"frames"`
	FrameMetadata LegacyFrameMetadata  `json:"frameMetadata"`
}

// LegacyService maps catalog state onto the legacy card protocol. It keeps no
// state of its own, so identical catalog contents and input give identical cards.
type LegacyService struct {
	catalog *CatalogService
	baseURL string
	logger  *slog.Logger
}

// NewLegacyService creates a legacy responder that links to pages under baseURL.
func NewLegacyService(catalog *CatalogService, baseURL string, logger *slog.Logger) *LegacyService {
	return &LegacyService{
		catalog: catalog,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

func legacySearchText(input string) string {
	search := strings.TrimSpace(input)
	if utf8.RuneCountInString(search) <= maxLegacySearchRunes {
		return search
	}
	return strings.TrimSpace(string([]rune(search)[:maxLegacySearchRunes]))
}

// RespondToAction builds the card for one button press. Trimmed input text
// searches the catalog; otherwise the newest entries are listed.
func (s *LegacyService) RespondToAction(ctx context.Context, action LegacyAction) (*LegacyCardResponse, error) {
	if action.ButtonIndex <= 0 {
		action.ButtonIndex = 1
	}
	search := legacySearchText(action.InputText)

	entries, err := s.catalog.ListEntries(ctx, store.EntryFilter{
		Search: search,
		Limit:  LegacyPageSize,
	})
	if err != nil {
		return nil, domainerrors.Dependency(msgLegacyFailed, err)
	}

	s.logger.DebugContext(ctx, "legacy frame action",
		"button_index", action.ButtonIndex,
		"search", search,
		"results", len(entries),
	)

	return s.buildCard(entries, search), nil
}

func (s *LegacyService) buildCard(entries []*domain.Entry, search string) *LegacyCardResponse {
	buttons := make([]LegacyButton, 0, len(entries)+1)
	frames := make([]LegacyFrameSummary, 0, len(entries))
	for _, e := range entries {
		buttons = append(buttons, LegacyButton{
			Label:  e.Name,
			Action: ActionLink,
			Target: s.EntryURL(e.ID),
		})
		frames = append(frames, LegacyFrameSummary{ID: e.ID, Name: e.Name, CreatorName: e.CreatorName})
	}

	// A full page means more entries may exist.
	if len(entries) == LegacyPageSize {
		buttons = append(buttons, LegacyButton{Label: legacyMoreLabel, Action: ActionPost})
	}

	return &LegacyCardResponse{
		Frames: frames,
		FrameMetadata: LegacyFrameMetadata{
			Buttons: buttons,
			Image: LegacyImage{
				URL:         s.imageURL(entries, search),
				AspectRatio: legacyAspectRatio,
			},
			PostURL:   s.baseURL + "/api/frame-action",
			InputText: LegacyInputText{Label: legacySearchLabel},
		},
	}
}

// EntryURL is the canonical detail page of an entry.
func (s *LegacyService) EntryURL(entryID string) string {
	return s.baseURL + "/frame/" + url.PathEscape(entryID)
}

// imageURL points at the preview image. The version changes whenever the listed
// entries or the search change, so caches never serve a stale preview.
func (s *LegacyService) imageURL(entries []*domain.Entry, search string) string {
	u := s.baseURL + "/api/og?v=" + previewVersion(entries, search)
	if search != "" {
		u += "&q=" + url.QueryEscape(search)
	}
	return u
}

func previewVersion(entries []*domain.Entry, search string) string {
	d := xxhash.New()
	for _, e := range entries {
		_, _ = d.WriteString(e.ID)
		_, _ = d.WriteString("\x00")
	}
	_, _ = d.WriteString("\x01")
	_, _ = d.WriteString(search)
	return strconv.FormatUint(d.Sum64(), 36)
}
