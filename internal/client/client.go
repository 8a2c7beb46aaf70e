// internal/client/client.go

// Package client wraps the storefront REST API. Every endpoint decodes the
// `{code, message, data}` envelope; a shared request hook injects the bearer
// token and a shared decode step maps business failures onto *APIError and
// the two global auth events.
package client

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
	"github.com/yycy134679/school-secondhand-trading-system/internal/storage"
)

// TokenKey is the storage slot holding the bearer credential.
const TokenKey = "auth-token"

const defaultTimeout = 10 * time.Second

// APIError is a business failure reported through the envelope.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

// Client is the typed storefront API client.
type Client struct {
	http   *resty.Client
	tokens storage.Store

	onUnauthorized []func()
	onForbidden    []func(message string)
}

// New builds a client against baseURL (e.g. "http://localhost:8080/api/v1").
// The token slot is consulted on every request.
func New(baseURL string, tokens storage.Store) *Client {
	c := &Client{tokens: tokens}
	c.http = resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout)

	c.http.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if token, ok := tokens.Get(TokenKey); ok && token != "" {
			req.SetHeader("Authorization", "Bearer "+token)
		}
		return nil
	})
	return c
}

// Token returns the stored bearer credential, if any.
func (c *Client) Token() (string, bool) {
	return c.tokens.Get(TokenKey)
}

func (c *Client) SetToken(token string) error {
	return c.tokens.Set(TokenKey, token)
}

func (c *Client) ClearToken() {
	_ = c.tokens.Remove(TokenKey)
}

// OnUnauthorized registers a hook fired whenever the backend reports the
// session as unauthenticated. The stored token is already cleared when hooks
// run.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = append(c.onUnauthorized, fn)
}

// OnForbidden registers a hook fired on permission-denied responses.
func (c *Client) OnForbidden(fn func(message string)) {
	c.onForbidden = append(c.onForbidden, fn)
}

// ---- shared request plumbing ----

func get[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	var env models.Envelope[T]
	req := c.http.R().SetContext(ctx).SetResult(&env)
	if query != nil {
		req.SetQueryParamsFromValues(query)
	}
	resp, err := req.Get(path)
	return decode(c, &env, resp, err)
}

func post[T any](ctx context.Context, c *Client, path string, body interface{}) (T, error) {
	var env models.Envelope[T]
	req := c.http.R().SetContext(ctx).SetResult(&env)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Post(path)
	return decode(c, &env, resp, err)
}

func put[T any](ctx context.Context, c *Client, path string, body interface{}) (T, error) {
	var env models.Envelope[T]
	resp, err := c.http.R().SetContext(ctx).SetResult(&env).SetBody(body).Put(path)
	return decode(c, &env, resp, err)
}

func decode[T any](c *Client, env *models.Envelope[T], resp *resty.Response, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, fmt.Errorf("request %s: %w", resp.Request.URL, err)
	}
	if !resp.IsSuccess() {
		return zero, fmt.Errorf("request %s: unexpected status %d", resp.Request.URL, resp.StatusCode())
	}

	if env.Code != models.CodeSuccess {
		switch env.Code {
		case models.CodeUnauthenticated:
			c.ClearToken()
			for _, fn := range c.onUnauthorized {
				fn()
			}
		case models.CodeForbidden:
			for _, fn := range c.onForbidden {
				fn(env.Message)
			}
		default:
			logrus.WithFields(logrus.Fields{
				"code": env.Code,
				"url":  resp.Request.URL,
			}).Warn(env.Message)
		}
		return zero, &APIError{Code: env.Code, Message: env.Message}
	}
	return env.Data, nil
}
