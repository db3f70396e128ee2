package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/atelier-vert/rapport/pkg/domain/model"
	"github.com/atelier-vert/rapport/pkg/domain/model/chat"
	"github.com/atelier-vert/rapport/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// attachmentDoc is the Firestore representation of chat.Attachment
type attachmentDoc struct {
	ID          string `firestore:"ID"`
	Name        string `firestore:"Name"`
	Mimetype    string `firestore:"Mimetype"`
	DownloadURL string `firestore:"DownloadURL"`
	ThumbURL    string `firestore:"ThumbURL"`
}

// messageDoc is the Firestore representation of chat.Message
type messageDoc struct {
	ID          string          `firestore:"ID"`
	ChannelID   string          `firestore:"ChannelID"`
	UserID      string          `firestore:"UserID"`
	UserName    string          `firestore:"UserName"`
	Text        string          `firestore:"Text"`
	CreatedAt   time.Time       `firestore:"CreatedAt"`
	Attachments []attachmentDoc `firestore:"Attachments"`
}

// teamMemberDoc is the Firestore representation of model.TeamMember
type teamMemberDoc struct {
	Key       string `firestore:"Key"`
	Name      string `firestore:"Name"`
	UserID    string `firestore:"UserID"`
	Mentioned bool   `firestore:"Mentioned"`
}

// interventionDoc is the Firestore document representation of
// model.Intervention. Buckets are flattened into three arrays because
// Firestore maps cannot be keyed by custom types.
type interventionDoc struct {
	ID             string          `firestore:"ID"`
	Client         string          `firestore:"Client"`
	AuthorID       string          `firestore:"AuthorID"`
	AuthorName     string          `firestore:"AuthorName"`
	Day            time.Time       `firestore:"Day"`
	Date           time.Time       `firestore:"Date"`
	Provenance     string          `firestore:"Provenance"`
	Messages       []messageDoc    `firestore:"Messages"`
	Text           string          `firestore:"Text"`
	EnhancedText   string          `firestore:"EnhancedText"`
	Title          string          `firestore:"Title"`
	Regular        []attachmentDoc `firestore:"Regular"`
	Before         []attachmentDoc `firestore:"Before"`
	After          []attachmentDoc `firestore:"After"`
	Participants   []teamMemberDoc `firestore:"Participants"`
	HasBeforeAfter bool            `firestore:"HasBeforeAfter"`
	StartedAt      time.Time       `firestore:"StartedAt"`
	EndedAt        time.Time       `firestore:"EndedAt"`
	CreatedAt      time.Time       `firestore:"CreatedAt"`
}

func toAttachmentDocs(atts []chat.Attachment) []attachmentDoc {
	docs := make([]attachmentDoc, 0, len(atts))
	for _, att := range atts {
		docs = append(docs, attachmentDoc{
			ID:          att.ID(),
			Name:        att.Name(),
			Mimetype:    att.Mimetype(),
			DownloadURL: att.DownloadURL(),
			ThumbURL:    att.ThumbURL(),
		})
	}
	return docs
}

func fromAttachmentDocs(docs []attachmentDoc) []chat.Attachment {
	atts := make([]chat.Attachment, 0, len(docs))
	for _, d := range docs {
		atts = append(atts, chat.NewAttachmentFromData(d.ID, d.Name, d.Mimetype, d.DownloadURL, d.ThumbURL))
	}
	return atts
}

func toInterventionDoc(iv *model.Intervention) *interventionDoc {
	doc := &interventionDoc{
		ID:             string(iv.ID),
		Client:         string(iv.Client),
		AuthorID:       string(iv.AuthorID),
		AuthorName:     iv.AuthorName,
		Day:            iv.Day,
		Date:           iv.Date,
		Provenance:     string(iv.Provenance),
		Text:           iv.Text,
		EnhancedText:   iv.EnhancedText,
		Title:          iv.Title,
		Regular:        toAttachmentDocs(iv.Buckets[types.SectionRegular]),
		Before:         toAttachmentDocs(iv.Buckets[types.SectionBefore]),
		After:          toAttachmentDocs(iv.Buckets[types.SectionAfter]),
		HasBeforeAfter: iv.HasBeforeAfter,
		StartedAt:      iv.StartedAt,
		EndedAt:        iv.EndedAt,
		CreatedAt:      iv.CreatedAt,
	}

	for _, msg := range iv.Messages {
		doc.Messages = append(doc.Messages, messageDoc{
			ID:          msg.ID(),
			ChannelID:   msg.ChannelID().String(),
			UserID:      msg.UserID().String(),
			UserName:    msg.UserName(),
			Text:        msg.Text(),
			CreatedAt:   msg.CreatedAt(),
			Attachments: toAttachmentDocs(msg.Attachments()),
		})
	}

	for _, m := range iv.Participants {
		doc.Participants = append(doc.Participants, teamMemberDoc{
			Key:       m.Key,
			Name:      m.Name,
			UserID:    m.UserID.String(),
			Mentioned: m.Mentioned,
		})
	}

	return doc
}

func fromInterventionDoc(d *interventionDoc) *model.Intervention {
	iv := &model.Intervention{
		ID:           types.InterventionID(d.ID),
		Client:       types.ClientName(d.Client),
		AuthorID:     types.UserID(d.AuthorID),
		AuthorName:   d.AuthorName,
		Day:          d.Day,
		Date:         d.Date,
		Provenance:   types.DateProvenance(d.Provenance),
		Text:         d.Text,
		EnhancedText: d.EnhancedText,
		Title:        d.Title,
		Buckets: map[types.Section][]chat.Attachment{
			types.SectionRegular: fromAttachmentDocs(d.Regular),
			types.SectionBefore:  fromAttachmentDocs(d.Before),
			types.SectionAfter:   fromAttachmentDocs(d.After),
		},
		HasBeforeAfter: d.HasBeforeAfter,
		StartedAt:      d.StartedAt,
		EndedAt:        d.EndedAt,
		CreatedAt:      d.CreatedAt,
	}

	for _, m := range d.Messages {
		iv.Messages = append(iv.Messages, chat.NewMessageFromData(
			m.ID,
			types.ChannelID(m.ChannelID),
			types.UserID(m.UserID),
			m.UserName,
			m.Text,
			m.CreatedAt,
			fromAttachmentDocs(m.Attachments),
		))
	}

	for _, m := range d.Participants {
		iv.Participants = append(iv.Participants, model.TeamMember{
			Key:       m.Key,
			Name:      m.Name,
			UserID:    types.UserID(m.UserID),
			Mentioned: m.Mentioned,
		})
	}

	return iv
}

func docToIntervention(doc *firestore.DocumentSnapshot) (*model.Intervention, error) {
	var d interventionDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, err
	}
	return fromInterventionDoc(&d), nil
}

type interventionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newInterventionRepository(client *firestore.Client) *interventionRepository {
	return &interventionRepository{client: client}
}

func (r *interventionRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(r.collectionPrefix + "interventions")
}

func (r *interventionRepository) Put(ctx context.Context, iv *model.Intervention) error {
	if err := iv.ID.Validate(); err != nil {
		return goerr.Wrap(err, "intervention ID is required")
	}

	doc := toInterventionDoc(iv)
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	if _, err := r.collection().Doc(string(iv.ID)).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put intervention", goerr.V("id", iv.ID))
	}

	return nil
}

func (r *interventionRepository) Get(ctx context.Context, id types.InterventionID) (*model.Intervention, error) {
	doc, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "intervention not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get intervention", goerr.V("id", id))
	}

	iv, err := docToIntervention(doc)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal intervention", goerr.V("id", id))
	}

	return iv, nil
}

func (r *interventionRepository) List(ctx context.Context, client types.ClientName, start, end time.Time) ([]*model.Intervention, error) {
	iter := r.collection().
		Where("Client", "==", string(client)).
		Where("Date", ">=", start).
		Where("Date", "<", end).
		OrderBy("Date", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	interventions := make([]*model.Intervention, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate interventions",
				goerr.V("client", client))
		}

		iv, err := docToIntervention(doc)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal intervention")
		}

		interventions = append(interventions, iv)
	}

	return interventions, nil
}
