// Package api is the HTTP client for the portal API. Session credentials
// travel in the auth cookie, which the client keeps in an in-memory jar;
// nothing is persisted between runs.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/dmorenoweb/portal/internal/common"
	"github.com/dmorenoweb/portal/internal/netx"
)

// User mirrors the server's account representation.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// NewsItem is one article in a news listing.
type NewsItem struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// GalleryImage is the server's record of an uploaded image.
type GalleryImage struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Client talks to the portal API. Safe for use from a single goroutine.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client with an in-memory cookie jar so the session
// cookie set by login/register is replayed on subsequent calls.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) (int, error) {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < http.StatusMultipleChoices {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

// Session returns the current principal, or nil when the client holds no
// valid credential. The endpoint itself never fails with an auth error.
func (c *Client) Session(ctx context.Context) (*User, error) {
	var out struct {
		User *User `json:"user"`
	}
	status, err := c.doJSON(ctx, http.MethodGet, "/auth/session", nil, &out)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", status)
	}
	return out.User, nil
}

// Login exchanges credentials for a session cookie and returns the account.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var out struct {
		User *User `json:"user"`
	}
	status, err := c.doJSON(ctx, http.MethodPost, "/auth/login",
		map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK:
		return out.User, nil
	case http.StatusUnauthorized:
		return nil, common.ErrorUnauthorized
	default:
		return nil, fmt.Errorf("unexpected status %d", status)
	}
}

// Register creates an account and returns it; the session cookie from the
// response lands in the jar, so the new user is immediately signed in.
func (c *Client) Register(ctx context.Context, name, email, password string) (*User, error) {
	var out struct {
		User *User `json:"user"`
	}
	status, err := c.doJSON(ctx, http.MethodPost, "/auth/register",
		map[string]string{"name": name, "email": email, "password": password}, &out)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusCreated:
		return out.User, nil
	case http.StatusConflict:
		return nil, common.ErrorAlreadyExists
	default:
		return nil, fmt.Errorf("unexpected status %d", status)
	}
}

// Logout asks the server to clear the session cookie.
func (c *Client) Logout(ctx context.Context) error {
	status, err := c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("unexpected status %d", status)
	}
	return nil
}

// LatestNews fetches the first page of news with the given page size.
func (c *Client) LatestNews(ctx context.Context, limit int) ([]NewsItem, error) {
	var out struct {
		News []NewsItem `json:"news"`
	}
	status, err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/news?page=1&limit=%d", limit), nil, &out)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", status)
	}
	return out.News, nil
}

// UploadImage registers a gallery image, receives a presigned PUT URL, and
// pushes the bytes straight to object storage.
func (c *Client) UploadImage(ctx context.Context, title string, data []byte) (*GalleryImage, error) {
	var out struct {
		Image     *GalleryImage `json:"image"`
		UploadURL string        `json:"uploadUrl"`
	}
	status, err := c.doJSON(ctx, http.MethodPost, "/gallery", map[string]string{"title": title}, &out)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusCreated:
	case http.StatusUnauthorized:
		return nil, common.ErrorUnauthorized
	default:
		return nil, fmt.Errorf("unexpected status %d", status)
	}

	if out.UploadURL != "" {
		if err := netx.UploadToPresignedURL(ctx, out.UploadURL, data); err != nil {
			return nil, err
		}
	}
	return out.Image, nil
}
