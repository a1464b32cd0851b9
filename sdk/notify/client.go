// Package notify is a client for the Fiwe notification API plus a
// notification center that keeps a user's inbox and preferences in sync.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is the notification API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// NewClient creates a new notification API client.
//
// Parameters:
//   - baseURL: The API base URL (e.g., "https://api.example.com")
//   - token: The bearer access token of the acting user or service
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListNotifications returns a user's notifications, most recent first.
func (c *Client) ListNotifications(ctx context.Context, userID uint, filter ListFilter) (*ListResult, error) {
	q := url.Values{}
	if filter.Type != "" {
		q.Set("type", filter.Type)
	}
	if filter.Priority != "" {
		q.Set("priority", filter.Priority)
	}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.Read != nil {
		q.Set("read", strconv.FormatBool(*filter.Read))
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		q.Set("offset", strconv.Itoa(filter.Offset))
	}

	path := fmt.Sprintf("/notifications/user/%d", userID)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var result ListResult
	if err := c.doRequest(ctx, "list notifications", msgList, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateNotification stores a notification; it starts PENDING.
func (c *Client) CreateNotification(ctx context.Context, req CreateRequest) (*Notification, error) {
	var n Notification
	if err := c.doRequest(ctx, "create notification", msgCreate, http.MethodPost, "/notifications", req, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// CreateFromTemplate renders the type's template for the user. It returns
// nil without error when the user's preferences skip the notification.
func (c *Client) CreateFromTemplate(ctx context.Context, req TemplateRequest) (*Notification, error) {
	var n *Notification
	if err := c.doRequest(ctx, "create notification from template", msgCreate, http.MethodPost, "/notifications/from-template", req, &n); err != nil {
		return nil, err
	}
	return n, nil
}

// MarkAsRead marks one notification as read. Marking a read notification
// again succeeds and leaves its read time unchanged.
func (c *Client) MarkAsRead(ctx context.Context, id uint) (*Notification, error) {
	var n Notification
	path := fmt.Sprintf("/notifications/%d/read", id)
	if err := c.doRequest(ctx, "mark notification as read", msgMarkRead, http.MethodPut, path, nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkAllAsRead marks every unread notification of the user as read and
// returns how many changed.
func (c *Client) MarkAllAsRead(ctx context.Context, userID uint) (int64, error) {
	var resp struct {
		Updated int64 `json:"updated"`
	}
	path := fmt.Sprintf("/notifications/user/%d/mark-all-read", userID)
	if err := c.doRequest(ctx, "mark all notifications as read", msgMarkAllRead, http.MethodPut, path, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Updated, nil
}

// DeleteNotification removes a notification permanently.
func (c *Client) DeleteNotification(ctx context.Context, id uint) error {
	path := fmt.Sprintf("/notifications/%d", id)
	return c.doRequest(ctx, "delete notification", msgDelete, http.MethodDelete, path, nil, nil)
}

// UnreadCount returns how many of the user's notifications are unread.
func (c *Client) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var resp struct {
		Count int64 `json:"count"`
	}
	path := fmt.Sprintf("/notifications/user/%d/unread-count", userID)
	if err := c.doRequest(ctx, "get unread count", msgUnread, http.MethodGet, path, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// GetPreferences returns the user's preferences, defaults included.
func (c *Client) GetPreferences(ctx context.Context, userID uint) (*Preferences, error) {
	var p Preferences
	path := fmt.Sprintf("/notifications/user/%d/preferences", userID)
	if err := c.doRequest(ctx, "get preferences", msgPreferences, http.MethodGet, path, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePreferences merges update into the user's preferences and returns
// the full result.
func (c *Client) UpdatePreferences(ctx context.Context, userID uint, update PreferenceUpdate) (*Preferences, error) {
	var p Preferences
	path := fmt.Sprintf("/notifications/user/%d/preferences", userID)
	if err := c.doRequest(ctx, "update preferences", msgUpdatePrefs, http.MethodPut, path, update, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListCategories returns the category catalog.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.doRequest(ctx, "list categories", msgCategories, http.MethodGet, "/notifications/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// PublishEvent hands a business event (e.g. "booking.created") to the
// notification triggers. The server processes it asynchronously.
func (c *Client) PublishEvent(ctx context.Context, eventType, aggregateID string, payload map[string]any) error {
	body := map[string]any{
		"type":         eventType,
		"aggregate_id": aggregateID,
		"payload":      payload,
	}
	return c.doRequest(ctx, "publish event", msgPublish, http.MethodPost, "/notification-events", body, nil)
}

func (c *Client) doRequest(ctx context.Context, op, message, method, path string, body any, result any) error {
	fail := func(status int, detail string, err error) error {
		return &APIError{Op: op, StatusCode: status, Message: message, Detail: detail, Err: err}
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fail(0, "", fmt.Errorf("marshal request: %w", err))
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fail(0, "", fmt.Errorf("create request: %w", err))
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(0, "", fmt.Errorf("send request: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(resp.StatusCode, "", fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiResp apiResponse
		detail := ""
		if json.Unmarshal(respBody, &apiResp) == nil && apiResp.Error != nil {
			detail = apiResp.Error.Message
		}
		return fail(resp.StatusCode, detail, nil)
	}

	if result == nil || len(respBody) == 0 {
		return nil
	}

	var apiResp struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return fail(resp.StatusCode, "", fmt.Errorf("unmarshal response: %w", err))
	}

	if !apiResp.Success {
		return fail(resp.StatusCode, apiResp.Message, nil)
	}

	if len(apiResp.Data) == 0 || string(apiResp.Data) == "null" {
		return nil
	}

	if err := json.Unmarshal(apiResp.Data, result); err != nil {
		return fail(resp.StatusCode, "", fmt.Errorf("unmarshal data: %w", err))
	}

	return nil
}
