package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	net_http "net/http"
	"net/url"
	"runtime"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/spiceai/specs/pkg/api"
	"github.com/spiceai/specs/pkg/version"
)

var _userAgent string

// Client talks to the HTTP API of a running spec server
type Client struct {
	baseUrl string
	client  *retryablehttp.Client
}

func NewClient(baseUrl string) *Client {
	client := retryablehttp.NewClient()
	client.Logger = log.New(ioutil.Discard, "", 0)
	client.RetryMax = 2

	return &Client{
		baseUrl: strings.TrimSuffix(baseUrl, "/"),
		client:  client,
	}
}

func (c *Client) Health(ctx context.Context) error {
	_, err := c.call(ctx, net_http.MethodGet, "/health", "", nil)
	return err
}

func (c *Client) ListSpecs(ctx context.Context) ([]*api.Spec, error) {
	body, err := c.call(ctx, net_http.MethodGet, "/api/v0.1/specs", "application/json", nil)
	if err != nil {
		return nil, err
	}

	var specs []*api.Spec
	if err := json.Unmarshal(body, &specs); err != nil {
		return nil, fmt.Errorf("invalid spec list: %w", err)
	}
	return specs, nil
}

func (c *Client) GetSpec(ctx context.Context, key string) (*api.Spec, error) {
	body, err := c.call(ctx, net_http.MethodGet, specPath(key, ""), "application/json", nil)
	if err != nil {
		return nil, err
	}

	var s api.Spec
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("invalid spec: %w", err)
	}
	return &s, nil
}

// Formats the JSON encoded value with the spec under key
func (c *Client) Format(ctx context.Context, key string, value []byte) (string, error) {
	body, err := c.call(ctx, net_http.MethodPost, specPath(key, "format"), "text/plain", value)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Parses str with the spec under key, returning the JSON encoded value
func (c *Client) Parse(ctx context.Context, key string, str string) ([]byte, error) {
	return c.call(ctx, net_http.MethodPost, specPath(key, "parse"), "application/json", []byte(str))
}

func (c *Client) Derive(ctx context.Context, key string, request *api.DeriveRequest) (*api.Spec, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	body, err := c.call(ctx, net_http.MethodPost, specPath(key, "derive"), "application/json", payload)
	if err != nil {
		return nil, err
	}

	var s api.Spec
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("invalid spec: %w", err)
	}
	return &s, nil
}

// Combines the spec under key with another served spec
func (c *Client) Combine(ctx context.Context, key string, request *api.CombineRequest) (*api.Spec, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	body, err := c.call(ctx, net_http.MethodPost, specPath(key, "combine"), "application/json", payload)
	if err != nil {
		return nil, err
	}

	var s api.Spec
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("invalid spec: %w", err)
	}
	return &s, nil
}

func (c *Client) call(ctx context.Context, method string, path string, accept string, payload []byte) ([]byte, error) {
	var reqBody interface{}
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := retryablehttp.NewRequest(method, c.baseUrl+path, reqBody)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req.WithContext(ctx), accept)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != net_http.StatusOK {
		return nil, &ResponseError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	return body, nil
}

func (c *Client) do(req *retryablehttp.Request, accept string) (*net_http.Response, error) {
	req.Header.Set("User-Agent", userAgent())
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// ResponseError carries the status and message of a rejected request
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, net_http.StatusText(e.StatusCode), e.Message)
}

func specPath(key string, action string) string {
	path := "/api/v0.1/specs/" + url.PathEscape(key)
	if action != "" {
		path += "/" + action
	}
	return path
}

func userAgent() string {
	if _userAgent == "" {
		_userAgent = fmt.Sprintf("Specs/%s %s/%s (%s)", version.Version(), version.Component(), version.Version(), runtime.GOOS)
	}
	return _userAgent
}
