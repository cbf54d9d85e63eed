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

	"github.com/dmitrijs2005/racfadmin/internal/common"
	"github.com/dmitrijs2005/racfadmin/internal/logging"
	"github.com/dmitrijs2005/racfadmin/internal/models"
)

// DefaultBaseURL is used when no server_url is configured.
const DefaultBaseURL = "http://127.0.0.1:4000/api"

const maxBodyBytes = 1 << 20

// HTTPClient talks JSON to the remote user service.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

// NewHTTPClient returns a client rooted at baseURL. A zero timeout leaves
// deadlines entirely to the caller's context.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = logging.Nop{}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

var _ Client = (*HTTPClient)(nil)

type errorBody struct {
	Message string `json:"message"`
}

func (c *HTTPClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *HTTPClient) List(ctx context.Context) ([]models.UserRecord, error) {
	var out []models.UserRecord
	if err := c.do(ctx, http.MethodGet, "/users", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.UserRecord{}
	}
	return out, nil
}

func (c *HTTPClient) Create(ctx context.Context, p models.CreateUserPayload) (models.UserRecord, error) {
	var out models.UserRecord
	if err := c.do(ctx, http.MethodPost, "/users", p, &out); err != nil {
		return models.UserRecord{}, err
	}
	return out, nil
}

func (c *HTTPClient) Update(ctx context.Context, id string, p models.UpdateUserPayload) (models.UserRecord, error) {
	var out models.UserRecord
	if err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), p, &out); err != nil {
		return models.UserRecord{}, err
	}
	return out, nil
}

// Delete treats 404 as success: either way the record is gone afterwards.
func (c *HTTPClient) Delete(ctx context.Context, id string) error {
	err := c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
	var rerr *common.RemoteRequestError
	if errors.As(err, &rerr) && rerr.Status == http.StatusNotFound {
		return nil
	}
	return err
}

// do sends one request. Only transport and read failures become
// common.ErrRemoteUnavailable; any 2xx is success. With out == nil the body
// is ignored, otherwise it is decoded into out when possible.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "remote request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", common.ErrRemoteUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		return common.NewRemoteRequestError(resp.StatusCode, eb.Message)
	}

	// Any 2xx is success; an unreadable body leaves out at its zero value.
	if out == nil {
		return nil
	}
	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusResetContent || len(bytes.TrimSpace(data)) == 0 {
		c.log.Warn(ctx, "remote returned empty body", "method", method, "path", path, "status", resp.StatusCode)
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.log.Warn(ctx, "remote returned undecodable body", "method", method, "path", path, "error", err)
		reset(out)
		return nil
	}
	return nil
}

// reset zeroes whatever a failed Unmarshal may have partially filled in.
func reset(out any) {
	switch v := out.(type) {
	case *models.UserRecord:
		*v = models.UserRecord{}
	case *[]models.UserRecord:
		*v = nil
	}
}
