package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/autodate/stampctl/internal/client/intake"
)

// Error bodies are user-facing text; anything longer is truncated.
const maxErrorBody = 64 << 10

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HTTPClient implements Client over net/http. Two underlying clients share
// one cookie jar: `api` carries an overall timeout for the short JSON
// endpoints, `stream` has none so a long-running stamp job is governed only
// by its context deadline.
type HTTPClient struct {
	base   *url.URL
	jar    http.CookieJar
	api    *http.Client
	stream *http.Client

	stampTimeout time.Duration
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout, stampTimeout time.Duration) (*HTTPClient, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server addr %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("server addr %q: scheme and host required", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	c := &HTTPClient{
		base:         base,
		stampTimeout: stampTimeout,
	}
	c.setJar(jar)
	c.api.Timeout = timeout
	return c, nil
}

func (c *HTTPClient) setJar(jar http.CookieJar) {
	timeout := time.Duration(0)
	if c.api != nil {
		timeout = c.api.Timeout
	}
	c.jar = jar
	c.api = &http.Client{Jar: jar, Timeout: timeout}
	c.stream = &http.Client{Jar: jar}
}

func (c *HTTPClient) endpoint(path string) string {
	return strings.TrimRight(c.base.String(), "/") + path
}

// checkStatus converts a non-2xx response into a StatusError carrying the
// body text (or the status phrase when the body is empty).
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return NewStatusError(resp.StatusCode, strings.TrimSpace(string(body)))
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, payload any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.api.Do(req)
	if err != nil {
		return wrapTransport(path, err)
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	return c.postJSON(ctx, "/auth/login", credentials{Email: email, Password: password})
}

func (c *HTTPClient) Signup(ctx context.Context, email, password string) error {
	return c.postJSON(ctx, "/auth/signup", credentials{Email: email, Password: password})
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.postJSON(ctx, "/auth/logout", nil)
}

func (c *HTTPClient) TopUpDemo(ctx context.Context) error {
	return c.postJSON(ctx, "/auth/topup_demo", nil)
}

// Status fetches the session's credit balance and display price. The price
// defaults to PriceUnknown when the server omits credit_cost_gbp.
func (c *HTTPClient) Status(ctx context.Context) (Status, error) {
	st := Status{CreditCostGBP: PriceUnknown}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/auth/status"), nil)
	if err != nil {
		return st, fmt.Errorf("build status request: %w", err)
	}

	resp, err := c.api.Do(req)
	if err != nil {
		return st, wrapTransport("/auth/status", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return st, err
	}
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return st, fmt.Errorf("decode status response: %w", err)
	}
	return st, nil
}

// Stamp submits the job as a multipart body: one "files" part per selected
// file in selection order, then the four scalar fields, each trimmed. The
// response body is returned as a raw stream regardless of its declared
// content type; closing the returned reader releases the request deadline.
func (c *HTTPClient) Stamp(ctx context.Context, files []intake.FileRef, params Params) (io.ReadCloser, error) {
	var cancel context.CancelFunc
	if c.stampTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.stampTimeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		err := writeStampBody(mw, files, params)
		if cerr := mw.Close(); err == nil {
			err = cerr
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/api/stamp"), pr)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("build stamp request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.stream.Do(req)
	if err != nil {
		cancel()
		return nil, wrapTransport("/api/stamp", err)
	}

	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		cancel()
		return nil, err
	}

	return &cancelReadCloser{rc: resp.Body, cancel: cancel}, nil
}

func writeStampBody(mw *multipart.Writer, files []intake.FileRef, params Params) error {
	for _, f := range files {
		part, err := mw.CreateFormFile("files", f.Name)
		if err != nil {
			return fmt.Errorf("create part %s: %w", f.Name, err)
		}
		src, err := os.Open(f.Path)
		if err != nil {
			return fmt.Errorf("open %s: %w", f.Path, err)
		}
		_, err = io.Copy(part, src)
		src.Close()
		if err != nil {
			return fmt.Errorf("read %s: %w", f.Path, err)
		}
	}

	fields := []struct{ name, value string }{
		{"date", params.Date},
		{"start_time", params.StartTime},
		{"end_time", params.EndTime},
		{"crop_height", params.CropHeight},
	}
	for _, f := range fields {
		if err := mw.WriteField(f.name, strings.TrimSpace(f.value)); err != nil {
			return fmt.Errorf("write field %s: %w", f.name, err)
		}
	}
	return nil
}

// cancelReadCloser ties the request's context to the body's lifetime.
type cancelReadCloser struct {
	rc     io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelReadCloser) Read(p []byte) (int, error) { return c.rc.Read(p) }

func (c *cancelReadCloser) Close() error {
	err := c.rc.Close()
	c.cancel()
	return err
}

// SessionToken serializes the session cookies held for the service so they
// can be persisted across runs, the way a browser keeps its cookie jar.
func (c *HTTPClient) SessionToken() string {
	cookies := c.jar.Cookies(c.base)
	pairs := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		pairs = append(pairs, ck.Name+"="+ck.Value)
	}
	return strings.Join(pairs, "; ")
}

// RestoreSession replaces the cookie jar with one holding the given token.
// An empty token clears the session.
func (c *HTTPClient) RestoreSession(token string) error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return fmt.Errorf("cookie jar: %w", err)
	}

	if token != "" {
		var cookies []*http.Cookie
		for _, pair := range strings.Split(token, ";") {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			name, value, found := strings.Cut(pair, "=")
			if !found {
				return fmt.Errorf("malformed session token part %q", pair)
			}
			cookies = append(cookies, &http.Cookie{Name: name, Value: value, Path: "/"})
		}
		jar.SetCookies(c.base, cookies)
	}

	c.setJar(jar)
	return nil
}
