// Package backend is the HTTP client of the vital-tracker backend that stores
// entries and photos.
package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"vital_dashboard/internal/models"
	"vital_dashboard/internal/view"
)

// maxErrorBody bounds how much of a failure body is kept.
const maxErrorBody = 4 << 10

// StatusError is a non-2xx answer or a transport failure of the backend.
// Code is 0 when no response was received. Body is the response text as
// sent, up to maxErrorBody bytes.
type StatusError struct {
	Op   string
	Code int
	Body string
	Err  error
}

func (e *StatusError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case strings.TrimSpace(e.Body) != "":
		return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.Code, strings.TrimSpace(e.Body))
	default:
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.Code)
	}
}

func (e *StatusError) Unwrap() error { return e.Err }

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for baseURL. A nil httpClient gets one with timeout.
func New(baseURL string, timeout time.Duration, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Entries fetches and normalizes the whole collection.
func (c *Client) Entries(ctx context.Context) ([]models.Record, error) {
	const op = "GET /entries"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/entries", nil)
	if err != nil {
		return nil, &StatusError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(op, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	records, err := view.DecodeEntries(resp.Body)
	if err != nil {
		return nil, &StatusError{Op: op, Code: resp.StatusCode, Err: err}
	}
	return records, nil
}

// Delete removes the entry with the given id.
func (c *Client) Delete(ctx context.Context, id string) error {
	op := "DELETE /entry/" + id
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/entry/"+url.PathEscape(id), nil)
	if err != nil {
		return &StatusError{Op: op, Err: err}
	}
	resp, err := c.do(op, req)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// Submit posts the vitals and photo parts as one multipart entry.
func (c *Client) Submit(ctx context.Context, vitals models.Vitals, parts []models.Attachment) error {
	const op = "POST /entry"
	body, contentType, err := encodeEntry(vitals, parts)
	if err != nil {
		return &StatusError{Op: op, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/entry", body)
	if err != nil {
		return &StatusError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.do(op, req)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// do sends req and turns transport failures and non-2xx answers into
// *StatusError. On success the caller owns resp.Body.
func (c *Client) do(op string, req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &StatusError{Op: op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Op: op, Code: resp.StatusCode, Body: string(msg)}
	}
	return resp, nil
}

func encodeEntry(vitals models.Vitals, parts []models.Attachment) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := [][2]string{
		{"sys", vitals.Sys},
		{"dia", vitals.Dia},
		{"pulse", vitals.Pulse},
		{"temp", vitals.Temp},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f[0], err)
		}
	}

	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, p.Field, p.FileName))
		h.Set("Content-Type", p.ContentType)
		pw, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", p.Field, err)
		}
		if _, err := pw.Write(p.Data); err != nil {
			return nil, "", fmt.Errorf("write part %s: %w", p.Field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
