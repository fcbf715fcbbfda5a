// Package stylize talks to the remote photo stylization service.
package stylize

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds one stylization round trip. The upstream image
// model routinely takes tens of seconds.
const DefaultTimeout = 90 * time.Second

// ErrNoImage is returned when the service answers 2xx without image data.
var ErrNoImage = errors.New("no image data in stylization response")

// APIError is a non-2xx answer from the service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Stylization API returned %d", e.Status)
}

type response struct {
	ImageBase64 string `json:"imageBase64"`
	Error       string `json:"error"`
}

// Client posts photos to a stylization endpoint that answers
// {"imageBase64": "..."}.
type Client struct {
	url  string
	http *http.Client
	log  logrus.FieldLogger
}

// NewClient returns a client for the endpoint at url. A zero timeout uses
// DefaultTimeout; log may be nil.
func NewClient(url string, timeout time.Duration, log logrus.FieldLogger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
		log:  log.WithField("component", "StylizeClient"),
	}
}

// Enabled reports whether an endpoint is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.url != ""
}

// Stylize sends photo as the multipart field "photo" and returns the
// decoded image the service produced.
func (c *Client) Stylize(ctx context.Context, photo []byte, filename string) ([]byte, error) {
	if !c.Enabled() {
		return nil, errors.New("stylization is not configured")
	}
	if filename == "" {
		filename = "photo.jpg"
	}
	log := c.log.WithFields(logrus.Fields{
		"request_id":    uuid.NewString()[:8],
		"photo_size_kb": len(photo) / 1024,
	})
	log.Info("stylization started")
	start := time.Now()

	body, contentType, err := multipartPhoto(photo, filename)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Error("stylization request failed")
		return nil, fmt.Errorf("stylize: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("stylize: read response: %w", err)
	}
	var out response
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if decodeErr == nil {
			apiErr.Message = out.Error
		}
		log.WithField("status", resp.StatusCode).Warn(apiErr.Error())
		return nil, apiErr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("stylize: decode response: %w", decodeErr)
	}
	if out.ImageBase64 == "" {
		return nil, ErrNoImage
	}
	img, err := base64.StdEncoding.DecodeString(out.ImageBase64)
	if err != nil {
		return nil, fmt.Errorf("stylize: decode image: %w", err)
	}

	log.WithFields(logrus.Fields{
		"total_ms":       time.Since(start).Milliseconds(),
		"result_size_kb": len(img) / 1024,
	}).Info("stylization complete")
	return img, nil
}

func multipartPhoto(photo []byte, filename string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("photo", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(photo); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
