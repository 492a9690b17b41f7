// Package client is the Go client for the SADE decision server.
package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

type Option func(*Client)

// WithAuthToken sets the bearer token sent with every request. Needed
// for the admin audit endpoints.
func WithAuthToken(token string) Option {
	return func(c *Client) {
		c.authToken = token
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type urlBuilder struct {
	base  string
	path  string
	query url.Values
}

func (c *Client) url() urlBuilder {
	return urlBuilder{base: c.baseURL, query: url.Values{}}
}

func (u urlBuilder) setPath(path string) urlBuilder {
	u.path = path
	return u
}

func (u urlBuilder) addQueryParam(key string, value any) urlBuilder {
	u.query.Add(key, fmt.Sprintf("%v", value))
	return u
}

func (u urlBuilder) build() string {
	s := u.base + u.path
	if len(u.query) > 0 {
		s += "?" + u.query.Encode()
	}
	return s
}
