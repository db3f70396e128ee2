package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/atelier-vert/rapport/pkg/domain/model"
	"github.com/atelier-vert/rapport/pkg/domain/model/chat"
	"github.com/atelier-vert/rapport/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type interventionRepository struct {
	mu            sync.RWMutex
	interventions map[types.InterventionID]*model.Intervention
}

func newInterventionRepository() *interventionRepository {
	return &interventionRepository{
		interventions: make(map[types.InterventionID]*model.Intervention),
	}
}

func (r *interventionRepository) Put(ctx context.Context, iv *model.Intervention) error {
	if err := iv.ID.Validate(); err != nil {
		return goerr.Wrap(err, "intervention ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copyIntervention(iv)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	r.interventions[iv.ID] = stored
	return nil
}

func (r *interventionRepository) Get(ctx context.Context, id types.InterventionID) (*model.Intervention, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	iv, exists := r.interventions[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "intervention not found", goerr.V("id", id))
	}

	return copyIntervention(iv), nil
}

func (r *interventionRepository) List(ctx context.Context, client types.ClientName, start, end time.Time) ([]*model.Intervention, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Intervention, 0)
	for _, iv := range r.interventions {
		if iv.Client != client {
			continue
		}
		if iv.Date.Before(start) || !iv.Date.Before(end) {
			continue
		}
		result = append(result, copyIntervention(iv))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})

	return result, nil
}

// copyIntervention returns a copy with its own slices and bucket map to
// prevent external modification. Messages are immutable, so pointer
// sharing is fine.
func copyIntervention(iv *model.Intervention) *model.Intervention {
	clone := *iv

	clone.Messages = make([]*chat.Message, len(iv.Messages))
	copy(clone.Messages, iv.Messages)

	clone.Participants = make([]model.TeamMember, len(iv.Participants))
	copy(clone.Participants, iv.Participants)

	clone.Buckets = make(map[types.Section][]chat.Attachment, len(iv.Buckets))
	for sec, atts := range iv.Buckets {
		bucket := make([]chat.Attachment, len(atts))
		copy(bucket, atts)
		clone.Buckets[sec] = bucket
	}

	return &clone
}
