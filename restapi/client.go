package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tvuforum/syncGo/models"
)

// Client talks to the forum backend's REST surface. Mutating calls carry the
// bearer token; reads work unauthenticated.
type Client struct {
	baseUrl string
	token   string
	http    *http.Client
}

func NewClient(baseUrl, token string) *Client {
	return &Client{
		baseUrl: strings.TrimRight(baseUrl, "/"),
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// GetPost fetches the single-post snapshot: the post with nested root
// comments and the materialized like roster.
func (c *Client) GetPost(ctx context.Context, postId string) (*models.PostSnapshot, error) {
	snapshot := &models.PostSnapshot{}
	if err := c.do(ctx, http.MethodGet, "/api/posts/"+postId, nil, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (c *Client) CreateComment(ctx context.Context, req models.CreateCommentRequest) (*models.Comment, error) {
	comment := &models.Comment{}
	if err := c.do(ctx, http.MethodPost, "/api/comments", req, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (c *Client) DeleteComment(ctx context.Context, commentId string, req models.DeleteCommentRequest) error {
	return c.do(ctx, http.MethodDelete, "/api/comments/"+commentId, req, nil)
}

func (c *Client) ToggleLike(ctx context.Context, req models.ToggleLikeRequest) error {
	return c.do(ctx, http.MethodPost, "/api/likes/toggle", req, nil)
}

func (c *Client) UpdatePost(ctx context.Context, postId string, req models.UpdatePostRequest) error {
	return c.do(ctx, http.MethodPut, "/api/posts/"+postId, req, nil)
}

func (c *Client) DeletePost(ctx context.Context, postId string) error {
	return c.do(ctx, http.MethodDelete, "/api/posts/"+postId, nil, nil)
}

// GetProfile resolves a user's display profile by id.
func (c *Client) GetProfile(ctx context.Context, userId string) (*models.UserRef, error) {
	user := &models.UserRef{}
	if err := c.do(ctx, http.MethodGet, "/api/users/"+userId, nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseUrl+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if len(c.token) > 0 {
		req.Header.Set("Authorization", "bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("%s %s: status %d: %s", method, path, res.StatusCode, strings.TrimSpace(string(message)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}
