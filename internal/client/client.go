// Package client 通过HTTP调用条目服务，实现 board.Store。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SlpAus/keluhkesah-backend/internal/comment"
	"github.com/SlpAus/keluhkesah-backend/internal/entry"
	"github.com/SlpAus/keluhkesah-backend/internal/reaction"
)

// DefaultTimeout 是单个请求的默认超时
const DefaultTimeout = 10 * time.Second

// StatusError 表示服务端返回了非预期的状态码
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("服务端返回 %d", e.Code)
	}
	return fmt.Sprintf("服务端返回 %d: %s", e.Code, e.Message)
}

// Client 是条目服务的HTTP客户端
type Client struct {
	baseURL string
	http    *http.Client
}

// New 创建一个客户端，baseURL 形如 http://localhost:8080
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, want int) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("序列化请求数据失败: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("发送请求 %s %s 失败: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return &StatusError{Code: resp.StatusCode, Message: errBody.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("解析响应失败: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

func entryPath(id string) string {
	return "/api/entries/" + url.PathEscape(id)
}

// ListEntries 读取全部条目，从新到旧
func (c *Client) ListEntries(ctx context.Context) ([]entry.Entry, error) {
	var entries []entry.Entry
	if err := c.do(ctx, http.MethodGet, "/api/entries", nil, &entries, http.StatusOK); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateEntry 提交一条新条目，返回服务端分配的ID
func (c *Client) CreateEntry(ctx context.Context, name, message string) (string, error) {
	var out entry.CreatedResponse
	in := entry.CreateEntryRequest{Name: name, Message: message}
	if err := c.do(ctx, http.MethodPost, "/api/entries", in, &out, http.StatusCreated); err != nil {
		return "", err
	}
	return out.ID, nil
}

// UpdateEntryField 把条目的一个反应计数设为value
func (c *Client) UpdateEntryField(ctx context.Context, entryID string, k reaction.Kind, value int) error {
	path := entryPath(entryID) + "/reactions/" + k.String()
	err := c.do(ctx, http.MethodPut, path, entry.SetCountRequest{Count: &value}, nil, http.StatusNoContent)
	if isNotFound(err) {
		return fmt.Errorf("%w: %w", entry.ErrNotFound, err)
	}
	return err
}

// ListComments 读取条目下的全部评论，从旧到新
func (c *Client) ListComments(ctx context.Context, entryID string) ([]comment.Comment, error) {
	var comments []comment.Comment
	err := c.do(ctx, http.MethodGet, entryPath(entryID)+"/"+comment.SubCollection, nil, &comments, http.StatusOK)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %w", comment.ErrEntryNotFound, err)
		}
		return nil, err
	}
	for i := range comments {
		comments[i].EntryID = entryID
	}
	return comments, nil
}

// CreateComment 在条目下追加一条评论，返回评论ID
func (c *Client) CreateComment(ctx context.Context, entryID, name, body string) (string, error) {
	var out comment.CreatedResponse
	in := comment.CreateCommentRequest{Name: name, Comment: body}
	err := c.do(ctx, http.MethodPost, entryPath(entryID)+"/"+comment.SubCollection, in, &out, http.StatusCreated)
	if err != nil {
		if isNotFound(err) {
			return "", fmt.Errorf("%w: %w", comment.ErrEntryNotFound, err)
		}
		return "", err
	}
	return out.ID, nil
}

// Health 检查服务端是否健康
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil, http.StatusOK)
}
