package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"touchbase-data/internal/domain"
)

// MemoryInteractionsRepo in-memory interaction log. Holds a reference to
// the contacts repo so LogOutreach can apply both writes under one lock,
// matching the transactional Postgres implementation.
type MemoryInteractionsRepo struct {
	mu           sync.RWMutex
	interactions map[string]domain.Interaction // interactionID -> Interaction
	contacts     *MemoryContactsRepo
}

func NewMemoryInteractionsRepo(contacts *MemoryContactsRepo) *MemoryInteractionsRepo {
	return &MemoryInteractionsRepo{
		interactions: map[string]domain.Interaction{},
		contacts:     contacts,
	}
}

var _ InteractionsRepository = (*MemoryInteractionsRepo)(nil)

func (r *MemoryInteractionsRepo) CreateInteraction(_ context.Context, userID string, in *domain.Interaction) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createLocked(userID, in), nil
}

func (r *MemoryInteractionsRepo) ListByContact(_ context.Context, userID, contactID string) ([]*domain.Interaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*domain.Interaction
	for _, in := range r.interactions {
		if in.UserID != userID || in.ContactID != contactID {
			continue
		}
		out := in
		result = append(result, &out)
	}
	// Newest first, mirroring the Postgres ORDER BY
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].InteractionID > result[j].InteractionID
	})
	return result, nil
}

func (r *MemoryInteractionsRepo) CountOutreach(_ context.Context, userID string, from, to time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, in := range r.interactions {
		if in.UserID != userID {
			continue
		}
		if in.Type == domain.InteractionNote {
			continue
		}
		if in.CreatedAt.Before(from) || !in.CreatedAt.Before(to) {
			continue
		}
		count++
	}
	return count, nil
}

func (r *MemoryInteractionsRepo) LogOutreach(_ context.Context, userID string, in *domain.Interaction, lastContacted, nextContactDate time.Time) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Contact update first: if the contact is gone, nothing is written.
	r.contacts.mu.Lock()
	err := r.contacts.updateScheduleLocked(userID, in.ContactID, &lastContacted, &nextContactDate)
	r.contacts.mu.Unlock()
	if err != nil {
		return "", err
	}

	return r.createLocked(userID, in), nil
}

func (r *MemoryInteractionsRepo) createLocked(userID string, in *domain.Interaction) string {
	stored := *in
	if stored.InteractionID == "" {
		stored.InteractionID = uuid.NewString()
	}
	stored.UserID = userID
	r.interactions[stored.InteractionID] = stored
	return stored.InteractionID
}
