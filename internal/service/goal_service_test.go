package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"touchbase-data/internal/domain"
	"touchbase-data/internal/repository"
	"touchbase-data/internal/service"
)

type goalFixture struct {
	contacts     *repository.MemoryContactsRepo
	interactions *repository.MemoryInteractionsRepo
	settings     *repository.MemorySettingsRepo
	clock        *fakeClock
	interactSvc  *service.InteractionService
	goalSvc      *service.GoalService
}

func newGoalFixture(t *testing.T, now time.Time, cache *service.ProgressCache) *goalFixture {
	t.Helper()
	contacts := repository.NewMemoryContactsRepo()
	interactions := repository.NewMemoryInteractionsRepo(contacts)
	settings := repository.NewMemorySettingsRepo()
	clock := newFakeClock(now)
	logger := zap.NewNop()

	due := service.NewDueService(contacts, logger)
	return &goalFixture{
		contacts:     contacts,
		interactions: interactions,
		settings:     settings,
		clock:        clock,
		interactSvc:  service.NewInteractionService(contacts, interactions, settings, cache, clock, logger),
		goalSvc:      service.NewGoalService(due, interactions, settings, cache, logger),
	}
}

func (f *goalFixture) addDueContacts(t *testing.T, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id, err := f.contacts.CreateContact(context.Background(), testUserID, &domain.Contact{
			FullName: string(rune('A'+i)) + "-contact",
			Category: domain.CategoryStandard,
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestProgress_EffectiveGoalIsMaxOfStoredAndDue(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	f := newGoalFixture(t, now, nil)
	f.addDueContacts(t, 12)
	require.NoError(t, f.settings.PutDailyGoal(context.Background(), testUserID, 5))

	progress, err := f.goalSvc.Progress(context.Background(), testUserID, now)
	require.NoError(t, err)
	require.Equal(t, 12, progress.DailyGoal) // 应联系 12 人 > 设置的 5
	require.Equal(t, 12, progress.DueToday)
	require.Equal(t, 0, progress.Contacted)
	require.Equal(t, 12, progress.Remaining)
}

func TestProgress_StoredGoalWinsWhenHigher(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	f := newGoalFixture(t, now, nil)
	f.addDueContacts(t, 3)
	require.NoError(t, f.settings.PutDailyGoal(context.Background(), testUserID, 10))

	progress, err := f.goalSvc.Progress(context.Background(), testUserID, now)
	require.NoError(t, err)
	require.Equal(t, 10, progress.DailyGoal)
	require.Equal(t, 3, progress.DueToday)
}

func TestProgress_AllZerosValid(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	f := newGoalFixture(t, now, nil)

	progress, err := f.goalSvc.Progress(context.Background(), testUserID, now)
	require.NoError(t, err)
	require.Equal(t, &domain.GoalProgress{}, progress)
}

func TestProgress_ContactedAndRemainingTrackInteractions(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	f := newGoalFixture(t, now, nil)
	ids := f.addDueContacts(t, 4)

	for _, id := range ids[:2] {
		_, err := f.interactSvc.RecordInteraction(context.Background(), service.RecordInteractionRequest{
			UserID:    testUserID,
			ContactID: id,
			Type:      domain.InteractionCall,
		})
		require.NoError(t, err)
	}

	progress, err := f.goalSvc.Progress(context.Background(), testUserID, f.clock.Now())
	require.NoError(t, err)
	require.Equal(t, 2, progress.Contacted)
	require.Equal(t, 2, progress.DueToday) // 已联系的两人排到 180 天后
	require.Equal(t, 2, progress.DailyGoal)
	require.Equal(t, 0, progress.Remaining)
}

func TestProgress_RemainingClampedAtZero(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	f := newGoalFixture(t, now, nil)
	ids := f.addDueContacts(t, 3)
	require.NoError(t, f.settings.PutDailyGoal(context.Background(), testUserID, 1))

	// 全部联系完：contacted 超过有效目标，remaining 不为负
	for _, id := range ids {
		_, err := f.interactSvc.RecordInteraction(context.Background(), service.RecordInteractionRequest{
			UserID:    testUserID,
			ContactID: id,
			Type:      domain.InteractionEmail,
		})
		require.NoError(t, err)
	}

	progress, err := f.goalSvc.Progress(context.Background(), testUserID, now)
	require.NoError(t, err)
	require.Equal(t, 3, progress.Contacted)
	require.Equal(t, 0, progress.Remaining)
}

func TestProgress_NoteNotCounted(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	f := newGoalFixture(t, now, nil)
	ids := f.addDueContacts(t, 2)

	_, err := f.interactSvc.RecordInteraction(context.Background(), service.RecordInteractionRequest{
		UserID:    testUserID,
		ContactID: ids[0],
		Type:      domain.InteractionNote,
		Notes:     "background info",
	})
	require.NoError(t, err)

	progress, err := f.goalSvc.Progress(context.Background(), testUserID, now)
	require.NoError(t, err)
	require.Equal(t, 0, progress.Contacted)
	// NOTE 仍会更新排期：该联系人已不在当日名单
	require.Equal(t, 1, progress.DueToday)
}

func TestProgress_RepeatedReadsIdentical(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	f := newGoalFixture(t, now, nil)
	f.addDueContacts(t, 5)
	require.NoError(t, f.settings.PutDailyGoal(context.Background(), testUserID, 8))

	first, err := f.goalSvc.Progress(context.Background(), testUserID, now)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := f.goalSvc.Progress(context.Background(), testUserID, now)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestProgress_CacheHitSkipsRecompute(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	kv := newFakeKVStore()
	cache := service.NewProgressCache(kv, time.Minute, zap.NewNop())
	f := newGoalFixture(t, now, cache)
	f.addDueContacts(t, 2)

	first, err := f.goalSvc.Progress(context.Background(), testUserID, now)
	require.NoError(t, err)
	require.Equal(t, 1, kv.Len())

	// 绕过服务直接加联系人：缓存未失效前快照不变
	f.addDueContacts(t, 3)
	cached, err := f.goalSvc.Progress(context.Background(), testUserID, now)
	require.NoError(t, err)
	require.Equal(t, first, cached)

	cache.Invalidate(context.Background(), testUserID, now)
	fresh, err := f.goalSvc.Progress(context.Background(), testUserID, now)
	require.NoError(t, err)
	require.Equal(t, 5, fresh.DueToday)
}

func TestRecordInteraction_InvalidatesProgressCache(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	kv := newFakeKVStore()
	cache := service.NewProgressCache(kv, time.Minute, zap.NewNop())
	f := newGoalFixture(t, now, cache)
	ids := f.addDueContacts(t, 2)

	before, err := f.goalSvc.Progress(context.Background(), testUserID, now)
	require.NoError(t, err)
	require.Equal(t, 0, before.Contacted)

	_, err = f.interactSvc.RecordInteraction(context.Background(), service.RecordInteractionRequest{
		UserID:    testUserID,
		ContactID: ids[0],
		Type:      domain.InteractionCall,
	})
	require.NoError(t, err)

	after, err := f.goalSvc.Progress(context.Background(), testUserID, now)
	require.NoError(t, err)
	require.Equal(t, 1, after.Contacted)
}

func TestUpdateDailyGoal(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	f := newGoalFixture(t, now, nil)

	require.NoError(t, f.goalSvc.UpdateDailyGoal(context.Background(), testUserID, 7, now))
	goal, err := f.goalSvc.DailyGoal(context.Background(), testUserID)
	require.NoError(t, err)
	require.Equal(t, 7, goal)

	err = f.goalSvc.UpdateDailyGoal(context.Background(), testUserID, -1, now)
	require.Error(t, err)
	require.Contains(t, err.Error(), "non-negative")

	// 0 表示不设固定目标，合法
	require.NoError(t, f.goalSvc.UpdateDailyGoal(context.Background(), testUserID, 0, now))
}
