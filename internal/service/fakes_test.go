package service_test

import (
	"context"
	"sync"
	"time"

	"touchbase-data/internal/service"
	"touchbase-data/internal/store"
)

// fakeClock 固定时间时钟，仅用于单元测试
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeKVStore 内存 KV + TTL，仅用于单元测试
type fakeKVStore struct {
	mu   sync.Mutex
	data map[string]fakeKVItem
}

type fakeKVItem struct {
	value   string
	expires time.Time // zero = no ttl
}

func newFakeKVStore() *fakeKVStore {
	return &fakeKVStore{
		data: make(map[string]fakeKVItem),
	}
}

func (f *fakeKVStore) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	item, ok := f.data[key]
	if !ok {
		return "", store.ErrMiss
	}
	if !item.expires.IsZero() && time.Now().After(item.expires) {
		delete(f.data, key)
		return "", store.ErrMiss
	}
	return item.value, nil
}

func (f *fakeKVStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	f.data[key] = fakeKVItem{value: value, expires: exp}
	return nil
}

func (f *fakeKVStore) Del(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeKVStore) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.data)
}

// fakeNotifier 记录投递调用，可注入失败
type fakeNotifier struct {
	mu        sync.Mutex
	reminders []service.DeliveryRequest
	smsCalls  int
	mailCalls int
	err       error
}

func (f *fakeNotifier) SendReminder(ctx context.Context, req service.DeliveryRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.reminders = append(f.reminders, req)
	return nil
}

func (f *fakeNotifier) SendTestSMS(ctx context.Context, phoneNumber, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.smsCalls++
	return nil
}

func (f *fakeNotifier) SendTestEmail(ctx context.Context, subject, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.mailCalls++
	return nil
}

// fakeEventPublisher 记录发布的通知事件
type fakeEventPublisher struct {
	mu     sync.Mutex
	events []any
	err    error
}

func (f *fakeEventPublisher) PublishJSON(ctx context.Context, data any) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.events = append(f.events, data)
	return "0-0", nil
}
