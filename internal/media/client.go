package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/studio-matra/portfolio-backend/internal/logging"
)

// ErrNotFound marks a missing asset, as opposed to a transport or API
// failure. The order store relies on this distinction.
var ErrNotFound = errors.New("media: asset not found")

const (
	defaultBaseURL = "https://api.cloudinary.com"
	uploadTimeout  = 60 * time.Second
	adminTimeout   = 30 * time.Second
	listPageSize   = 500
)

type Config struct {
	CloudName  string
	APIKey     string
	APISecret  string
	BaseFolder string
	// BaseURL overrides the Cloudinary endpoint, for tests.
	BaseURL string
}

// Client talks to the Cloudinary Upload and Admin APIs. A client built
// from empty credentials is inert: Enabled reports false and callers are
// expected to skip media operations entirely.
type Client struct {
	cfg          Config
	baseURL      string
	uploadClient *http.Client
	adminClient  *http.Client
	// Cloudinary rate-limits Admin API calls per hour; the paginated
	// catalog scan goes through this limiter so a large library does not
	// burst through the budget.
	adminLimiter *rate.Limiter
}

func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		cfg:          cfg,
		baseURL:      baseURL,
		uploadClient: &http.Client{Timeout: uploadTimeout},
		adminClient:  &http.Client{Timeout: adminTimeout},
		adminLimiter: rate.NewLimiter(rate.Limit(10), 10),
	}
}

// Enabled reports whether Cloudinary credentials are configured. An
// unconfigured host is a valid state, not an error.
func (c *Client) Enabled() bool {
	return c.cfg.CloudName != "" && c.cfg.APIKey != "" && c.cfg.APISecret != ""
}

// BaseFolder is the root folder all portfolio assets live under.
func (c *Client) BaseFolder() string {
	return c.cfg.BaseFolder
}

// Resource is one asset as the Admin API returns it.
type Resource struct {
	PublicID  string          `json:"public_id"`
	Format    string          `json:"format"`
	SecureURL string          `json:"secure_url"`
	CreatedAt time.Time       `json:"created_at"`
	Context   ResourceContext `json:"context"`
}

type ResourceContext struct {
	Custom map[string]string `json:"custom"`
}

// ListPage is one page of the asset listing plus the continuation cursor;
// an empty cursor means the listing is exhausted.
type ListPage struct {
	Resources  []Resource `json:"resources"`
	NextCursor string     `json:"next_cursor"`
}

// ListResources fetches one page of image assets under the base folder,
// with custom context included. Pass the previous page's cursor to
// continue, empty to start.
func (c *Client) ListResources(ctx context.Context, cursor string) (ListPage, error) {
	q := url.Values{}
	q.Set("type", "upload")
	q.Set("prefix", c.cfg.BaseFolder+"/")
	q.Set("max_results", strconv.Itoa(listPageSize))
	q.Set("context", "true")
	if cursor != "" {
		q.Set("next_cursor", cursor)
	}

	var page ListPage
	if err := c.adminGet(ctx, "/resources/image/upload", q, &page); err != nil {
		return ListPage{}, err
	}
	return page, nil
}

// GetResource fetches one asset with its context metadata. A missing
// asset returns ErrNotFound.
func (c *Client) GetResource(ctx context.Context, publicID string) (*Resource, error) {
	var res Resource
	if err := c.adminGet(ctx, "/resources/image/upload/"+publicID, url.Values{}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) adminGet(ctx context.Context, path string, q url.Values, out interface{}) error {
	if err := c.adminLimiter.Wait(ctx); err != nil {
		return err
	}

	reqURL := fmt.Sprintf("%s/v1_1/%s%s", c.baseURL, c.cfg.CloudName, path)
	if len(q) > 0 {
		reqURL += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.cfg.APIKey, c.cfg.APISecret)

	resp, err := c.adminClient.Do(req)
	if err != nil {
		return fmt.Errorf("cloudinary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("cloudinary status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode cloudinary response: %w", err)
	}
	return nil
}

// UploadParams describes one signed upload. Exactly one of File or
// DataURI carries the payload.
type UploadParams struct {
	File     io.Reader
	Filename string
	// DataURI uploads inline content (data:...;base64,...), used for the
	// order-document placeholder asset.
	DataURI   string
	PublicID  string
	Folder    string
	Context   map[string]string
	Overwrite bool
}

// UploadResult is the subset of the upload response the backend keeps.
type UploadResult struct {
	PublicID  string    `json:"public_id"`
	SecureURL string    `json:"secure_url"`
	CreatedAt time.Time `json:"created_at"`
}

// Upload performs a signed upload to the Upload API.
func (c *Client) Upload(ctx context.Context, p UploadParams) (*UploadResult, error) {
	logger := logging.New(ctx)

	params := url.Values{}
	params.Set("timestamp", strconv.FormatInt(time.Now().Unix(), 10))
	if p.PublicID != "" {
		params.Set("public_id", p.PublicID)
	}
	if p.Folder != "" {
		params.Set("folder", p.Folder)
	}
	if len(p.Context) > 0 {
		params.Set("context", encodeContext(p.Context))
	}
	if p.Overwrite {
		params.Set("overwrite", "true")
	}
	params.Set("signature", signParams(params, c.cfg.APISecret))
	params.Set("api_key", c.cfg.APIKey)

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k := range params {
		if err := w.WriteField(k, params.Get(k)); err != nil {
			return nil, fmt.Errorf("build upload form: %w", err)
		}
	}
	if p.DataURI != "" {
		if err := w.WriteField("file", p.DataURI); err != nil {
			return nil, fmt.Errorf("build upload form: %w", err)
		}
	} else {
		part, err := w.CreateFormFile("file", p.Filename)
		if err != nil {
			return nil, fmt.Errorf("build upload form: %w", err)
		}
		if _, err := io.Copy(part, p.File); err != nil {
			return nil, fmt.Errorf("read upload payload: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v1_1/%s/image/upload", c.baseURL, c.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.uploadClient.Do(req)
	if err != nil {
		logger.Error("media_upload", err)
		return nil, fmt.Errorf("cloudinary upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logger.Warnf("media_upload", "cloudinary returned status %d", resp.StatusCode)
		return nil, fmt.Errorf("cloudinary status %d: %s", resp.StatusCode, bytes.TrimSpace(raw))
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	return &result, nil
}

// Destroy removes one asset by public ID. Destroying an asset Cloudinary
// does not know is not an error; deletes are best-effort by design.
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	params := url.Values{}
	params.Set("public_id", publicID)
	params.Set("timestamp", strconv.FormatInt(time.Now().Unix(), 10))
	params.Set("signature", signParams(params, c.cfg.APISecret))
	params.Set("api_key", c.cfg.APIKey)

	reqURL := fmt.Sprintf("%s/v1_1/%s/image/destroy", c.baseURL, c.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewBufferString(params.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.uploadClient.Do(req)
	if err != nil {
		return fmt.Errorf("cloudinary destroy failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("cloudinary status %d: %s", resp.StatusCode, bytes.TrimSpace(raw))
	}
	return nil
}

// UploadAll issues every upload concurrently and waits for the batch.
// The first failure is the batch's failure; uploads that already
// completed are not rolled back.
func (c *Client) UploadAll(ctx context.Context, batch []UploadParams) ([]*UploadResult, error) {
	results := make([]*UploadResult, len(batch))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range batch {
		i, p := i, p
		g.Go(func() error {
			res, err := c.Upload(ctx, p)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// DestroyAll issues every delete concurrently with the same
// first-failure-surfaces semantics as UploadAll.
func (c *Client) DestroyAll(ctx context.Context, publicIDs []string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, id := range publicIDs {
		id := id
		g.Go(func() error {
			return c.Destroy(ctx, id)
		})
	}
	return g.Wait()
}
