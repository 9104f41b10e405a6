package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"touchbase-data/internal/domain"
)

// MemoryContactsRepo supports the scheduling core when DB is disabled
// (dev mode) and backs the unit tests. Same filter semantics as the
// Postgres implementation.
type MemoryContactsRepo struct {
	mu       sync.RWMutex
	contacts map[string]domain.Contact // contactID -> Contact
}

func NewMemoryContactsRepo() *MemoryContactsRepo {
	return &MemoryContactsRepo{
		contacts: map[string]domain.Contact{},
	}
}

var _ ContactsRepository = (*MemoryContactsRepo)(nil)

func (r *MemoryContactsRepo) GetContact(_ context.Context, userID, contactID string) (*domain.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.contacts[contactID]
	if !ok || c.UserID != userID {
		return nil, ErrContactNotFound
	}
	out := cloneContact(c)
	return &out, nil
}

func (r *MemoryContactsRepo) ListContacts(_ context.Context, userID string, filter ContactsFilter) ([]*domain.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*domain.Contact
	for _, c := range r.contacts {
		if c.UserID != userID {
			continue
		}
		if !matchContact(c, filter) {
			continue
		}
		out := cloneContact(c)
		result = append(result, &out)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].FullName != result[j].FullName {
			return result[i].FullName < result[j].FullName
		}
		return result[i].ContactID < result[j].ContactID
	})
	return result, nil
}

func (r *MemoryContactsRepo) UpdateSchedule(_ context.Context, userID, contactID string, lastContacted, nextContactDate *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateScheduleLocked(userID, contactID, lastContacted, nextContactDate)
}

func (r *MemoryContactsRepo) CreateContact(_ context.Context, userID string, c *domain.Contact) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneContact(*c)
	if stored.ContactID == "" {
		stored.ContactID = uuid.NewString()
	}
	stored.UserID = userID
	if !stored.Category.IsValid() {
		stored.Category = domain.CategoryStandard
	}
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.contacts[stored.ContactID] = stored
	return stored.ContactID, nil
}

// updateScheduleLocked is shared with MemoryInteractionsRepo.LogOutreach,
// which holds the lock across the interaction write and the contact update.
func (r *MemoryContactsRepo) updateScheduleLocked(userID, contactID string, lastContacted, nextContactDate *time.Time) error {
	c, ok := r.contacts[contactID]
	if !ok || c.UserID != userID {
		return ErrContactNotFound
	}
	c.LastContacted = copyTime(lastContacted)
	c.NextContactDate = copyTime(nextContactDate)
	c.UpdatedAt = time.Now()
	r.contacts[contactID] = c
	return nil
}

func matchContact(c domain.Contact, filter ContactsFilter) bool {
	if filter.Category != "" && c.Category != filter.Category {
		return false
	}
	if filter.DueBefore != nil {
		due := c.NextContactDate != nil && c.NextContactDate.Before(*filter.DueBefore)
		if filter.IncludeNeverContacted && c.LastContacted == nil {
			due = true
		}
		if !due {
			return false
		}
	}
	if filter.LastContactedFrom != nil {
		if c.LastContacted == nil || c.LastContacted.Before(*filter.LastContactedFrom) {
			return false
		}
	}
	if filter.LastContactedTo != nil {
		if c.LastContacted == nil || !c.LastContacted.Before(*filter.LastContactedTo) {
			return false
		}
	}
	return true
}

func cloneContact(c domain.Contact) domain.Contact {
	c.LastContacted = copyTime(c.LastContacted)
	c.NextContactDate = copyTime(c.NextContactDate)
	return c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
