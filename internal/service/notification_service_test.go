package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"touchbase-data/internal/domain"
	"touchbase-data/internal/repository"
	"touchbase-data/internal/service"
)

func TestBuildMessage(t *testing.T) {
	progress := &domain.GoalProgress{DueToday: 5}

	require.Equal(t, "You need to reach out to 5 people today.",
		service.BuildMessage(service.NotificationMorning, progress))
	require.Equal(t, "You have 5 people left to reach out to today.",
		service.BuildMessage(service.NotificationAfternoon, progress))
}

func TestBuildMessage_SameSnapshotSameOutput(t *testing.T) {
	progress := &domain.GoalProgress{DueToday: 3, Contacted: 1}
	first := service.BuildMessage(service.NotificationMorning, progress)
	require.Equal(t, first, service.BuildMessage(service.NotificationMorning, progress))
}

type notificationFixture struct {
	contacts *repository.MemoryContactsRepo
	settings *repository.MemorySettingsRepo
	notifier *fakeNotifier
	events   *fakeEventPublisher
	svc      *service.NotificationService
}

func newNotificationFixture(t *testing.T, now time.Time) *notificationFixture {
	t.Helper()
	contacts := repository.NewMemoryContactsRepo()
	interactions := repository.NewMemoryInteractionsRepo(contacts)
	settings := repository.NewMemorySettingsRepo()
	notifier := &fakeNotifier{}
	events := &fakeEventPublisher{}
	logger := zap.NewNop()

	due := service.NewDueService(contacts, logger)
	goals := service.NewGoalService(due, interactions, settings, nil, logger)
	svc := service.NewNotificationService(goals, settings, notifier, events, newFakeClock(now), logger)
	return &notificationFixture{
		contacts: contacts,
		settings: settings,
		notifier: notifier,
		events:   events,
		svc:      svc,
	}
}

func (f *notificationFixture) addDueContact(t *testing.T, name string) {
	t.Helper()
	_, err := f.contacts.CreateContact(context.Background(), testUserID, &domain.Contact{
		FullName: name,
		Category: domain.CategoryStandard,
	})
	require.NoError(t, err)
}

func TestDispatch_MorningReminder(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	f := newNotificationFixture(t, now)
	f.addDueContact(t, "Alice")
	f.addDueContact(t, "Bob")

	result, err := f.svc.Dispatch(context.Background(), testUserID, service.NotificationMorning)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, "You need to reach out to 2 people today.", result.Message)

	require.Len(t, f.notifier.reminders, 1)
	require.Equal(t, "morning", f.notifier.reminders[0].Kind)
	require.Equal(t, result.Message, f.notifier.reminders[0].Message)
	require.Len(t, f.events.events, 1)
}

func TestDispatch_DisabledSkipsDelivery(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	f := newNotificationFixture(t, now)

	disabled := domain.DefaultNotificationSettings(testUserID)
	disabled.NotificationsEnabled = false
	require.NoError(t, f.settings.PutNotificationSettings(context.Background(), testUserID, disabled))

	result, err := f.svc.Dispatch(context.Background(), testUserID, service.NotificationAfternoon)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, "Notifications are disabled", result.Message)
	require.Empty(t, f.notifier.reminders)
	require.Empty(t, f.events.events)
}

func TestDispatch_DeliveryFailureIsNotAnError(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)
	f := newNotificationFixture(t, now)
	f.notifier.err = errors.New("delivery service unavailable")

	result, err := f.svc.Dispatch(context.Background(), testUserID, service.NotificationAfternoon)
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Equal(t, "Failed to send afternoon notification", result.Message)
	require.Empty(t, f.events.events)
}

func TestDispatch_InvalidKind(t *testing.T) {
	f := newNotificationFixture(t, time.Now())

	_, err := f.svc.Dispatch(context.Background(), testUserID, service.NotificationKind("midnight"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid notification kind")
}

func TestDispatch_EventPublishFailureIgnored(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	f := newNotificationFixture(t, now)
	f.events.err = errors.New("stream unavailable")

	result, err := f.svc.Dispatch(context.Background(), testUserID, service.NotificationMorning)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Len(t, f.notifier.reminders, 1)
}

func TestSendTestSMS(t *testing.T) {
	f := newNotificationFixture(t, time.Now())

	result := f.svc.SendTestSMS(context.Background(), testUserID, "+15551234567", "hello")
	require.True(t, result.Success)
	require.Equal(t, 1, f.notifier.smsCalls)

	result = f.svc.SendTestSMS(context.Background(), testUserID, "", "hello")
	require.False(t, result.Success)
	require.Equal(t, "phoneNumber is required", result.Message)

	f.notifier.err = errors.New("twilio down")
	result = f.svc.SendTestSMS(context.Background(), testUserID, "+15551234567", "hello")
	require.False(t, result.Success)
}

func TestSendTestEmail(t *testing.T) {
	f := newNotificationFixture(t, time.Now())

	result := f.svc.SendTestEmail(context.Background(), testUserID, "Test", "hello")
	require.True(t, result.Success)
	require.Equal(t, 1, f.notifier.mailCalls)

	f.notifier.err = errors.New("smtp down")
	result = f.svc.SendTestEmail(context.Background(), testUserID, "Test", "hello")
	require.False(t, result.Success)
}
