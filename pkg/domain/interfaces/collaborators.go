package interfaces

import (
	"context"
	"time"

	"github.com/atelier-vert/rapport/pkg/domain/model"
	"github.com/atelier-vert/rapport/pkg/domain/model/chat"
	"github.com/atelier-vert/rapport/pkg/domain/types"
)

// ChatSource retrieves messages from the chat backend
type ChatSource interface {
	// FetchMessages returns all messages posted in the channel within
	// [from, to], sorted by timestamp ascending, with author display
	// names resolved
	FetchMessages(ctx context.Context, channelID types.ChannelID, from, to time.Time) ([]*chat.Message, error)
}

// Enhancer rewrites raw intervention notes into client-ready prose
type Enhancer interface {
	// Enhance produces a professional description and a short title
	// for the intervention. Implementations must degrade gracefully:
	// on upstream failure they return fallback text, not an error.
	Enhance(ctx context.Context, iv *model.Intervention) (description, title string)
}

// ImageStore resolves attachment references to publicly addressable image URLs
type ImageStore interface {
	// Upload fetches the attachment bytes from the chat backend and
	// stores them, returning the public URL
	Upload(ctx context.Context, att chat.Attachment) (string, error)
}

// PublishedImages maps attachment IDs to their uploaded URLs
type PublishedImages map[string]string

// Publisher writes the report and its interventions to the document store
type Publisher interface {
	// PublishReport creates the report page and intervention database
	// rows, links them together, and returns the page URL
	PublishReport(ctx context.Context, report *model.Report, interventions []*model.Intervention, images PublishedImages) (string, error)
}
