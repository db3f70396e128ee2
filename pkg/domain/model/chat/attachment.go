package chat

import (
	libslack "github.com/slack-go/slack"
)

// Attachment is an opaque reference to a file posted with a message.
// The pipeline never materializes attachment bytes; it only carries
// the reference through classification.
type Attachment struct {
	id          string
	name        string
	mimetype    string
	downloadURL string
	thumbURL    string
}

// NewAttachmentFromSlack creates an Attachment from a slack-go File struct
func NewAttachmentFromSlack(f libslack.File) Attachment {
	url := f.URLPrivateDownload
	if url == "" {
		url = f.URLPrivate
	}
	return Attachment{
		id:          f.ID,
		name:        f.Name,
		mimetype:    f.Mimetype,
		downloadURL: url,
		thumbURL:    bestThumbURL(f),
	}
}

// NewAttachmentFromData creates an Attachment from raw data (for repository reconstruction)
func NewAttachmentFromData(id, name, mimetype, downloadURL, thumbURL string) Attachment {
	return Attachment{
		id:          id,
		name:        name,
		mimetype:    mimetype,
		downloadURL: downloadURL,
		thumbURL:    thumbURL,
	}
}

// Getters
func (a Attachment) ID() string          { return a.id }
func (a Attachment) Name() string        { return a.name }
func (a Attachment) Mimetype() string    { return a.mimetype }
func (a Attachment) DownloadURL() string { return a.downloadURL }
func (a Attachment) ThumbURL() string    { return a.thumbURL }

// bestThumbURL selects the best available thumbnail URL from a Slack file.
// It prefers larger thumbnails for better display quality.
func bestThumbURL(f libslack.File) string {
	switch {
	case f.Thumb720 != "":
		return f.Thumb720
	case f.Thumb480 != "":
		return f.Thumb480
	case f.Thumb360 != "":
		return f.Thumb360
	case f.Thumb160 != "":
		return f.Thumb160
	default:
		return ""
	}
}
