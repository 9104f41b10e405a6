package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"touchbase-data/internal/domain"
	"touchbase-data/internal/repository"
	"touchbase-data/internal/service"
)

const testUserID = "00000000-0000-0000-0000-000000000001"

type interactionFixture struct {
	contacts     *repository.MemoryContactsRepo
	interactions *repository.MemoryInteractionsRepo
	settings     *repository.MemorySettingsRepo
	clock        *fakeClock
	svc          *service.InteractionService
}

func newInteractionFixture(t *testing.T, now time.Time) *interactionFixture {
	t.Helper()
	contacts := repository.NewMemoryContactsRepo()
	interactions := repository.NewMemoryInteractionsRepo(contacts)
	settings := repository.NewMemorySettingsRepo()
	clock := newFakeClock(now)

	svc := service.NewInteractionService(contacts, interactions, settings, nil, clock, zap.NewNop())
	return &interactionFixture{
		contacts:     contacts,
		interactions: interactions,
		settings:     settings,
		clock:        clock,
		svc:          svc,
	}
}

func (f *interactionFixture) createContact(t *testing.T, name string, category domain.ContactCategory) string {
	t.Helper()
	id, err := f.contacts.CreateContact(context.Background(), testUserID, &domain.Contact{
		FullName: name,
		Category: category,
	})
	require.NoError(t, err)
	return id
}

func TestRecordInteraction_ReschedulesByCategory(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	f := newInteractionFixture(t, now)
	contactID := f.createContact(t, "Alice", domain.CategoryHotlist)

	contact, err := f.svc.RecordInteraction(context.Background(), service.RecordInteractionRequest{
		UserID:    testUserID,
		ContactID: contactID,
		Type:      domain.InteractionCall,
		Notes:     "Quarterly check-in",
	})
	require.NoError(t, err)
	require.NotNil(t, contact.LastContacted)
	require.NotNil(t, contact.NextContactDate)
	require.True(t, contact.LastContacted.Equal(now))
	require.True(t, contact.NextContactDate.Equal(now.AddDate(0, 0, 30)))

	// 落库的联系人状态与返回值一致
	stored, err := f.contacts.GetContact(context.Background(), testUserID, contactID)
	require.NoError(t, err)
	require.True(t, stored.NextContactDate.Equal(now.AddDate(0, 0, 30)))
}

func TestRecordInteraction_UsesCustomFollowupSettings(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	f := newInteractionFixture(t, now)
	contactID := f.createContact(t, "Bob", domain.CategoryBList)

	custom := domain.DefaultFollowupSettings(testUserID)
	custom.FollowupBList = 10
	require.NoError(t, f.settings.PutFollowupSettings(context.Background(), testUserID, custom))

	contact, err := f.svc.RecordInteraction(context.Background(), service.RecordInteractionRequest{
		UserID:    testUserID,
		ContactID: contactID,
		Type:      domain.InteractionEmail,
	})
	require.NoError(t, err)
	require.True(t, contact.NextContactDate.Equal(now.AddDate(0, 0, 10)))
}

func TestRecordInteraction_NoteAlsoReschedules(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	f := newInteractionFixture(t, now)
	contactID := f.createContact(t, "Carol", domain.CategoryStandard)

	contact, err := f.svc.RecordInteraction(context.Background(), service.RecordInteractionRequest{
		UserID:    testUserID,
		ContactID: contactID,
		Type:      domain.InteractionNote,
		Notes:     "Met at conference",
	})
	require.NoError(t, err)
	require.NotNil(t, contact.LastContacted)
	require.True(t, contact.NextContactDate.Equal(now.AddDate(0, 0, 180)))

	// NOTE 记入历史但不计入当日外联数
	count, err := f.interactions.CountOutreach(context.Background(), testUserID,
		now.Truncate(24*time.Hour), now.Truncate(24*time.Hour).AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestRecordInteraction_Validation(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	f := newInteractionFixture(t, now)
	contactID := f.createContact(t, "Dave", domain.CategoryAList)

	tests := []struct {
		name    string
		req     service.RecordInteractionRequest
		wantErr string
	}{
		{
			name:    "missing user",
			req:     service.RecordInteractionRequest{ContactID: contactID, Type: domain.InteractionCall},
			wantErr: "user_id is required",
		},
		{
			name:    "missing contact",
			req:     service.RecordInteractionRequest{UserID: testUserID, Type: domain.InteractionCall},
			wantErr: "contact_id is required",
		},
		{
			name:    "invalid type",
			req:     service.RecordInteractionRequest{UserID: testUserID, ContactID: contactID, Type: "CARRIER_PIGEON"},
			wantErr: "invalid interaction type",
		},
		{
			name: "notes too long",
			req: service.RecordInteractionRequest{
				UserID:    testUserID,
				ContactID: contactID,
				Type:      domain.InteractionCall,
				Notes:     strings.Repeat("x", domain.MaxNotesLength+1),
			},
			wantErr: "notes must be at most",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.RecordInteraction(context.Background(), tt.req)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}

	// 校验失败不落任何数据
	history, err := f.svc.ListInteractions(context.Background(), testUserID, contactID)
	require.NoError(t, err)
	require.Empty(t, history)
}

func TestRecordInteraction_NotesAtLimitAccepted(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	f := newInteractionFixture(t, now)
	contactID := f.createContact(t, "Eve", domain.CategoryCList)

	_, err := f.svc.RecordInteraction(context.Background(), service.RecordInteractionRequest{
		UserID:    testUserID,
		ContactID: contactID,
		Type:      domain.InteractionText,
		Notes:     strings.Repeat("字", domain.MaxNotesLength),
	})
	require.NoError(t, err)
}

func TestRecordInteraction_ContactNotFound(t *testing.T) {
	f := newInteractionFixture(t, time.Now())

	_, err := f.svc.RecordInteraction(context.Background(), service.RecordInteractionRequest{
		UserID:    testUserID,
		ContactID: "missing-contact",
		Type:      domain.InteractionCall,
	})
	require.ErrorIs(t, err, repository.ErrContactNotFound)
}

func TestListInteractions_NewestFirst(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	f := newInteractionFixture(t, now)
	contactID := f.createContact(t, "Frank", domain.CategoryHotlist)

	for _, typ := range []domain.InteractionType{domain.InteractionCall, domain.InteractionEmail, domain.InteractionText} {
		_, err := f.svc.RecordInteraction(context.Background(), service.RecordInteractionRequest{
			UserID:    testUserID,
			ContactID: contactID,
			Type:      typ,
		})
		require.NoError(t, err)
		f.clock.Advance(time.Hour)
	}

	history, err := f.svc.ListInteractions(context.Background(), testUserID, contactID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	require.Equal(t, domain.InteractionText, history[0].Type)
	require.Equal(t, domain.InteractionEmail, history[1].Type)
	require.Equal(t, domain.InteractionCall, history[2].Type)
}

func TestInitializeNextContact_SchedulesFromNow(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	f := newInteractionFixture(t, now)
	contactID := f.createContact(t, "Grace", domain.CategoryAList)

	contact, err := f.svc.InitializeNextContact(context.Background(), testUserID, contactID)
	require.NoError(t, err)
	require.Nil(t, contact.LastContacted)
	require.True(t, contact.NextContactDate.Equal(now.AddDate(0, 0, 60)))
}

func TestInitializeNextContact_NoopWhenAlreadyScheduled(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	f := newInteractionFixture(t, now)
	contactID := f.createContact(t, "Heidi", domain.CategoryHotlist)

	first, err := f.svc.RecordInteraction(context.Background(), service.RecordInteractionRequest{
		UserID:    testUserID,
		ContactID: contactID,
		Type:      domain.InteractionCall,
	})
	require.NoError(t, err)

	f.clock.Advance(48 * time.Hour)
	contact, err := f.svc.InitializeNextContact(context.Background(), testUserID, contactID)
	require.NoError(t, err)
	require.True(t, contact.NextContactDate.Equal(*first.NextContactDate))
}
