package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с NotifyService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет уведомление
func (c *Client) Send(ctx context.Context, n Notification) error {
	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal notification: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// SendBestEffort отправляет уведомление, не пробрасывая ошибку доставки
// Операции бронирования не должны падать из-за недоступности уведомлений
func (c *Client) SendBestEffort(ctx context.Context, n Notification) {
	if err := c.Send(ctx, n); err != nil {
		c.log.Error("NotifyService unavailable, notification dropped: recipient=%d, type=%s: %v",
			n.RecipientID, n.Type, err)
		return
	}

	c.log.Info("Notification sent: recipient=%d, type=%s", n.RecipientID, n.Type)
}
