// Package apiclient translates backend resource operations into
// authenticated HTTP calls and normalized results, isolating every caller
// from transport detail.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/classpoint/classpoint/core"
	"github.com/classpoint/classpoint/core/session"
)

type (
	Options struct {
		Conf       *core.Config
		Session    *session.Service
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator
		// HTTPClient overrides the transport; defaults to http.Client
		// with the configured timeout.
		HTTPClient *http.Client
	}

	// Client exposes one method per backend resource operation. Every call
	// attaches the session bearer token when one exists, and either returns
	// parsed data or a normalized error; there is no retry and no abort
	// beyond the passed context.
	Client struct {
		baseURL    string
		conf       *core.Config
		http       *http.Client
		sess       *session.Service
		log        core.Logger
		validate   *validator.Validate
		translator ut.Translator
	}

	// File is an upload attached to a multipart operation.
	File struct {
		Name    string
		Content io.Reader
	}
)

func NewClient(opts *Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Conf.Client.Timeout}
	}
	return &Client{
		baseURL:    resolveBaseURL(opts.Conf),
		conf:       opts.Conf,
		http:       httpClient,
		sess:       opts.Session,
		log:        opts.Logger,
		validate:   opts.Validate,
		translator: opts.Translator,
	}
}

// resolveBaseURL picks the backend address: an explicit override wins;
// a configured dev-server port routes directly to a local backend; otherwise
// requests go through the origin's /api reverse proxy.
func resolveBaseURL(conf *core.Config) string {
	if conf.Client.BaseURL != "" {
		return strings.TrimRight(conf.Client.BaseURL, "/")
	}
	if conf.Client.DevServerPort > 0 {
		return fmt.Sprintf("http://localhost:%d/api", conf.Client.DevServerPort)
	}
	return strings.TrimRight(conf.Client.Origin, "/") + "/api"
}

// BaseURL returns the resolved backend address; download links are built
// from it.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request is the single builder behind every resource operation; the bearer
// attachment and error normalization invariants hold here for all of them.
func (c *Client) request(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrapf(err, "building %s %s", method, path)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.sess.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	raw, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "reading %s %s response", method, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return core.NewAPIError(resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	// a non-JSON success body resolves to the zero value
	if err := json.Unmarshal(raw, out); err != nil {
		return nil
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.request(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.request(ctx, http.MethodDelete, path, nil, "", nil)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out interface{}) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return errors.Wrapf(err, "marshalling %s %s body", method, path)
	}
	return c.request(ctx, method, path, bytes.NewReader(raw), "application/json", out)
}

// sendMultipart encodes fields and an optional file as multipart form data.
// The content type carries the writer's boundary; everything else follows
// the common contract.
func (c *Client) sendMultipart(ctx context.Context, method, path string, fields map[string]string, file *File, out interface{}) error {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return errors.Wrapf(err, "writing field %s", name)
		}
	}
	if file != nil {
		fw, err := mw.CreateFormFile("file", file.Name)
		if err != nil {
			return errors.Wrap(err, "creating form file")
		}
		if _, err := io.Copy(fw, file.Content); err != nil {
			return errors.Wrap(err, "copying file content")
		}
	}
	if err := mw.Close(); err != nil {
		return errors.Wrap(err, "closing multipart writer")
	}
	return c.request(ctx, method, path, &body, mw.FormDataContentType(), out)
}
