package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"touchbase-data/internal/domain"
	"touchbase-data/internal/repository"
)

// InteractionService 互动记录服务
// 记录外联事件并重算联系人的 last_contacted / next_contact_date
type InteractionService struct {
	contacts     repository.ContactsRepository
	interactions repository.InteractionsRepository
	settings     repository.SettingsRepository
	cache        *ProgressCache // 可为 nil
	clock        Clock
	logger       *zap.Logger
}

// NewInteractionService 创建互动记录服务
func NewInteractionService(
	contacts repository.ContactsRepository,
	interactions repository.InteractionsRepository,
	settings repository.SettingsRepository,
	cache *ProgressCache,
	clock Clock,
	logger *zap.Logger,
) *InteractionService {
	return &InteractionService{
		contacts:     contacts,
		interactions: interactions,
		settings:     settings,
		cache:        cache,
		clock:        clock,
		logger:       logger,
	}
}

// RecordInteractionRequest 记录互动请求
type RecordInteractionRequest struct {
	UserID    string
	ContactID string
	Type      domain.InteractionType
	Notes     string
}

// RecordInteraction 记录一次互动并重排下次联系时间
// 互动写入与联系人更新是同一逻辑操作；失败时调用方不应盲目重试
// （写入可能已提交），应重查联系人状态。本服务自身从不重试
func (s *InteractionService) RecordInteraction(ctx context.Context, req RecordInteractionRequest) (*domain.Contact, error) {
	// 写入前校验，校验不过不落任何数据
	if req.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	if req.ContactID == "" {
		return nil, fmt.Errorf("contact_id is required")
	}
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("invalid interaction type: %s", req.Type)
	}
	if utf8.RuneCountInString(req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("notes must be at most %d characters", domain.MaxNotesLength)
	}

	contact, err := s.contacts.GetContact(ctx, req.UserID, req.ContactID)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	settings, err := s.settings.GetFollowupSettings(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get followup settings: %w", err)
	}

	now := s.clock.Now()
	next := NextContactDate(now, contact.Category, settings)

	interaction := &domain.Interaction{
		ContactID: req.ContactID,
		UserID:    req.UserID,
		Type:      req.Type,
		Notes:     req.Notes,
		CreatedAt: now,
	}

	interactionID, err := s.interactions.LogOutreach(ctx, req.UserID, interaction, now, next)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to log interaction: %w", err)
	}

	contact.LastContacted = &now
	contact.NextContactDate = &next

	if s.cache != nil {
		s.cache.Invalidate(ctx, req.UserID, now)
	}

	s.logger.Info("Interaction recorded",
		zap.String("user_id", req.UserID),
		zap.String("contact_id", req.ContactID),
		zap.String("interaction_id", interactionID),
		zap.String("type", string(req.Type)),
		zap.Time("next_contact_date", next),
	)
	return contact, nil
}

// ListInteractions 查询联系人的互动历史（新→旧）
func (s *InteractionService) ListInteractions(ctx context.Context, userID, contactID string) ([]*domain.Interaction, error) {
	if userID == "" || contactID == "" {
		return nil, fmt.Errorf("user_id and contact_id are required")
	}
	if _, err := s.contacts.GetContact(ctx, userID, contactID); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	interactions, err := s.interactions.ListByContact(ctx, userID, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	return interactions, nil
}

// InitializeNextContact 为尚未排期的联系人按分类间隔生成 next_contact_date
// 不写互动记录、不更新 last_contacted（导入联系人后的初始化动作）
func (s *InteractionService) InitializeNextContact(ctx context.Context, userID, contactID string) (*domain.Contact, error) {
	if userID == "" || contactID == "" {
		return nil, fmt.Errorf("user_id and contact_id are required")
	}

	contact, err := s.contacts.GetContact(ctx, userID, contactID)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	if contact.NextContactDate != nil {
		return contact, nil
	}

	settings, err := s.settings.GetFollowupSettings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get followup settings: %w", err)
	}

	base := s.clock.Now()
	if contact.LastContacted != nil {
		base = *contact.LastContacted
	}
	next := NextContactDate(base, contact.Category, settings)

	if err := s.contacts.UpdateSchedule(ctx, userID, contactID, contact.LastContacted, &next); err != nil {
		return nil, fmt.Errorf("failed to initialize next contact date: %w", err)
	}
	contact.NextContactDate = &next
	return contact, nil
}
