package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/coursework/internal/common"
)

var ErrUnavailable = errors.New("server unavailable")

// Response is a server answer as received.
type Response struct {
	StatusCode int
	Body       []byte
}

// LoginResult is the body of a successful login. ExpiresAt is kept as sent.
type LoginResult struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}

// DecodeLogin parses a 200 login body.
func (r *Response) DecodeLogin() (*LoginResult, error) {
	var res LoginResult
	if err := json.Unmarshal(r.Body, &res); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if res.Token == "" {
		return nil, errors.New("login response has no token")
	}
	return &res, nil
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Login(ctx context.Context, username, password string) (*Response, error) {
	payload := map[string]string{"username": username, "password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/login", "", payload)
}

func (c *Client) GetProducts(ctx context.Context, token string) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/api/products", token, nil)
}

func (c *Client) GetProduct(ctx context.Context, token string, id int64) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/api/products/"+strconv.FormatInt(id, 10), token, nil)
}

// AddProduct sends a nil description as JSON null.
func (c *Client) AddProduct(ctx context.Context, token, name string, description *string, price float64) (*Response, error) {
	payload := struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
		Price       float64 `json:"price"`
	}{Name: name, Description: description, Price: price}
	return c.do(ctx, http.MethodPost, "/api/products", token, payload)
}

func (c *Client) do(ctx context.Context, method, path, token string, payload any) (*Response, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: b}, nil
}
