package repository

import (
	"context"
	"fmt"
	"sync"

	"touchbase-data/internal/domain"
)

// MemorySettingsRepo per-user settings store for dev mode and unit tests.
type MemorySettingsRepo struct {
	mu           sync.RWMutex
	followup     map[string]domain.FollowupSettings     // userID -> settings
	notification map[string]domain.NotificationSettings // userID -> settings
	goals        map[string]int                         // userID -> daily goal
}

func NewMemorySettingsRepo() *MemorySettingsRepo {
	return &MemorySettingsRepo{
		followup:     map[string]domain.FollowupSettings{},
		notification: map[string]domain.NotificationSettings{},
		goals:        map[string]int{},
	}
}

var _ SettingsRepository = (*MemorySettingsRepo)(nil)

func (r *MemorySettingsRepo) GetFollowupSettings(_ context.Context, userID string) (*domain.FollowupSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if s, ok := r.followup[userID]; ok {
		out := s
		return &out, nil
	}
	return domain.DefaultFollowupSettings(userID), nil
}

func (r *MemorySettingsRepo) PutFollowupSettings(_ context.Context, userID string, s *domain.FollowupSettings) error {
	if s == nil {
		return fmt.Errorf("settings are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *s
	stored.UserID = userID
	r.followup[userID] = stored
	return nil
}

func (r *MemorySettingsRepo) GetDailyGoal(_ context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.goals[userID], nil
}

func (r *MemorySettingsRepo) PutDailyGoal(_ context.Context, userID string, goal int) error {
	if goal < 0 {
		return fmt.Errorf("daily goal must be non-negative")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.goals[userID] = goal
	return nil
}

func (r *MemorySettingsRepo) GetNotificationSettings(_ context.Context, userID string) (*domain.NotificationSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if s, ok := r.notification[userID]; ok {
		out := s
		return &out, nil
	}
	return domain.DefaultNotificationSettings(userID), nil
}

func (r *MemorySettingsRepo) PutNotificationSettings(_ context.Context, userID string, s *domain.NotificationSettings) error {
	if s == nil {
		return fmt.Errorf("settings are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *s
	stored.UserID = userID
	r.notification[userID] = stored
	return nil
}
