package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"touchbase-data/internal/domain"
	"touchbase-data/internal/repository"
)

// DueService 当日应联系名单
type DueService struct {
	contacts repository.ContactsRepository
	logger   *zap.Logger
}

// NewDueService 创建应联系名单服务
func NewDueService(contacts repository.ContactsRepository, logger *zap.Logger) *DueService {
	return &DueService{contacts: contacts, logger: logger}
}

// DueToday 返回截至 asOf 当天应联系的联系人
// 规则：从未联系过的始终在列；next_contact_date 不晚于当天的在列，
// 逾期不处理则一直保留（不会因时间推移自动掉出）
// 排序：分类优先级（HOTLIST 最先），同级按姓名、ID
// 纯读操作，可安全重试
func (s *DueService) DueToday(ctx context.Context, userID string, asOf time.Time) ([]*domain.Contact, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	_, dayEnd := dayBounds(asOf)
	contacts, err := s.contacts.ListContacts(ctx, userID, repository.ContactsFilter{
		DueBefore:             &dayEnd,
		IncludeNeverContacted: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list due contacts: %w", err)
	}

	sort.SliceStable(contacts, func(i, j int) bool {
		pi, pj := contacts[i].Category.Priority(), contacts[j].Category.Priority()
		if pi != pj {
			return pi < pj
		}
		if contacts[i].FullName != contacts[j].FullName {
			return contacts[i].FullName < contacts[j].FullName
		}
		return contacts[i].ContactID < contacts[j].ContactID
	})

	s.logger.Debug("Due contacts computed",
		zap.String("user_id", userID),
		zap.Time("as_of", asOf),
		zap.Int("total", len(contacts)),
	)
	return contacts, nil
}
