package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	gallery "github.com/bitmark-inc/image-gallery"
	"github.com/bitmark-inc/image-gallery/traceutils"
)

type Client struct {
	client      *http.Client
	apiEndpoint string
}

// New creates a gallery API client connection
func New(apiEndpoint string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{
			Timeout: 15 * time.Second,
		}
	}

	return &Client{
		client:      client,
		apiEndpoint: strings.TrimSuffix(apiEndpoint, "/"),
	}
}

// flexInt accepts both JSON number and string forms. Some backends hand back
// bigint columns as text and the size must still come out numeric.
type flexInt int64

func (n *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*n = 0
		return nil
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid size value %s: %w", string(data), err)
	}

	*n = flexInt(v)
	return nil
}

type imagePayload struct {
	ID         int64     `json:"id"`
	URL        string    `json:"url"`
	Name       string    `json:"name"`
	Size       flexInt   `json:"size"`
	Username   *string   `json:"username"`
	Email      *string   `json:"email"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func (p imagePayload) record() gallery.ImageRecord {
	return gallery.ImageRecord{
		ID:         p.ID,
		URL:        p.URL,
		Name:       p.Name,
		Size:       int64(p.Size),
		Username:   p.Username,
		Email:      p.Email,
		UploadedAt: p.UploadedAt,
	}
}

// ListImages fetches all image records, most recent first.
func (c *Client) ListImages(ctx context.Context) ([]gallery.ImageRecord, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/api/images", c.apiEndpoint), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.responseError("list images", resp)
	}

	var payload []imagePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	records := make([]gallery.ImageRecord, 0, len(payload))
	for _, p := range payload {
		records = append(records, p.record())
	}

	return records, nil
}

// UploadImage submits one staged file plus the optional uploader fields.
func (c *Client) UploadImage(ctx context.Context, file StagedFile, username, email string) (gallery.ImageRecord, error) {
	var body bytes.Buffer

	w := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	if file.ContentType != "" {
		header.Set("Content-Type", file.ContentType)
	}

	part, err := w.CreatePart(header)
	if err != nil {
		return gallery.ImageRecord{}, err
	}
	if _, err := part.Write(file.Content); err != nil {
		return gallery.ImageRecord{}, err
	}

	if username != "" {
		if err := w.WriteField("username", username); err != nil {
			return gallery.ImageRecord{}, err
		}
	}
	if email != "" {
		if err := w.WriteField("email", email); err != nil {
			return gallery.ImageRecord{}, err
		}
	}

	if err := w.Close(); err != nil {
		return gallery.ImageRecord{}, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/api/upload", c.apiEndpoint), &body)
	if err != nil {
		return gallery.ImageRecord{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return gallery.ImageRecord{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return gallery.ImageRecord{}, c.responseError("upload", resp)
	}

	var payload imagePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return gallery.ImageRecord{}, err
	}

	record := payload.record()
	if record.URL == "" || record.Size == 0 {
		return gallery.ImageRecord{}, errors.New("invalid response from server")
	}

	return record, nil
}

// DeleteImage removes a record by id. ErrImageNotFound is returned as-is so
// callers can distinguish a stale local entry from a server failure.
func (c *Client) DeleteImage(ctx context.Context, id int64) error {
	req, err := http.NewRequestWithContext(ctx, "DELETE", fmt.Sprintf("%s/api/images/%d", c.apiEndpoint, id), nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return gallery.ErrImageNotFound
	default:
		return c.responseError("delete", resp)
	}
}

func (c *Client) responseError(op string, resp *http.Response) error {
	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		return fmt.Errorf("%s failed with status code %d: %s", op, resp.StatusCode, traceutils.DumpResponse(resp))
	}

	if body.Details != "" {
		return fmt.Errorf("%s failed: %s: %s", op, body.Error, body.Details)
	}

	return fmt.Errorf("%s failed: %s", op, body.Error)
}
