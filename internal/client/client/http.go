package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/itemkeeper/internal/client/models"
)

// HTTPClient talks to the itemkeeper JSON API.
type HTTPClient struct {
	baseURL    string
	headerName string
	hc         *http.Client
}

// NewHTTPClient returns a client for baseURL (e.g. "http://127.0.0.1:8080").
// headerName is the header used to send the token. A nil hc means
// http.DefaultClient.
func NewHTTPClient(baseURL, headerName string, hc *http.Client) *HTTPClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), headerName: headerName, hc: hc}
}

type credentials struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type itemRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var res tokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", credentials{Email: email, Password: password}, &res); err != nil {
		return "", err
	}
	return res.Token, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) (string, error) {
	var res tokenResponse
	body := credentials{Username: username, Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", body, &res); err != nil {
		return "", err
	}
	return res.Token, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/auth/user", token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) ListItems(ctx context.Context, token string) ([]models.Item, error) {
	var items []models.Item
	if err := c.do(ctx, http.MethodGet, "/items", token, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) CreateItem(ctx context.Context, token, title, description string) (*models.Item, error) {
	var it models.Item
	if err := c.do(ctx, http.MethodPost, "/items", token, itemRequest{Title: title, Description: description}, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *HTTPClient) UpdateItem(ctx context.Context, token, id, title, description string) (*models.Item, error) {
	var it models.Item
	path := "/items/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPut, path, token, itemRequest{Title: title, Description: description}, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *HTTPClient) DeleteItem(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/items/"+url.PathEscape(id), token, nil, nil)
}

// do sends a JSON request and decodes a 2xx JSON answer into out.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(c.headerName, token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var m struct {
		Msg string `json:"msg"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(data, &m); err != nil {
		m.Msg = strings.TrimSpace(string(data))
	}
	return &APIError{Status: resp.StatusCode, Msg: m.Msg}
}
