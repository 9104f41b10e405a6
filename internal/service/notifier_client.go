package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Notifier 外部投递协作方（实际 SMS/Email 发送方）
type Notifier interface {
	SendReminder(ctx context.Context, req DeliveryRequest) error
	SendTestSMS(ctx context.Context, phoneNumber, message string) error
	SendTestEmail(ctx context.Context, subject, message string) error
}

// DeliveryRequest 提醒投递请求
type DeliveryRequest struct {
	UserID       string `json:"userId"`
	Kind         string `json:"kind"`
	Message      string `json:"message"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	Email        string `json:"email,omitempty"`
	SMSEnabled   bool   `json:"smsEnabled"`
	EmailEnabled bool   `json:"emailEnabled"`
}

// notifierResponse 投递服务响应
type notifierResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NotifierClient 外部通知投递服务 API 客户端
type NotifierClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewNotifierClient 创建投递服务客户端
func NewNotifierClient(baseURL string, timeout time.Duration, logger *zap.Logger) *NotifierClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &NotifierClient{
		httpClient: client,
		logger:     logger,
	}
}

// 确保实现了接口
var _ Notifier = (*NotifierClient)(nil)

// SendReminder 投递提醒消息
func (c *NotifierClient) SendReminder(ctx context.Context, req DeliveryRequest) error {
	return c.post(ctx, "/notifier/api/v1/reminders", req)
}

// SendTestSMS 发送测试短信
func (c *NotifierClient) SendTestSMS(ctx context.Context, phoneNumber, message string) error {
	return c.post(ctx, "/notifier/api/v1/test-sms", map[string]string{
		"phoneNumber": phoneNumber,
		"message":     message,
	})
}

// SendTestEmail 发送测试邮件
func (c *NotifierClient) SendTestEmail(ctx context.Context, subject, message string) error {
	return c.post(ctx, "/notifier/api/v1/test-email", map[string]string{
		"subject": subject,
		"message": message,
	})
}

func (c *NotifierClient) post(ctx context.Context, path string, body any) error {
	var response notifierResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&response).
		Post(path)

	if err != nil {
		c.logger.Error("Notifier API call failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("failed to call notifier API: %w", err)
	}
	if resp.IsError() {
		c.logger.Error("Notifier API returned error status",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode()),
		)
		return fmt.Errorf("notifier API error: status %d", resp.StatusCode())
	}
	if !response.Success {
		c.logger.Error("Notifier API reported failure",
			zap.String("path", path),
			zap.String("msg", response.Message),
		)
		return fmt.Errorf("notifier rejected delivery: %s", response.Message)
	}
	return nil
}
