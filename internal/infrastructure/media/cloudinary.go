// Package media implements the hosted media store against the Cloudinary
// upload API: two signed form POSTs (upload, destroy) and URL-based asset
// addressing.
package media

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/core/ports"
)

const (
	apiBase        = "https://api.cloudinary.com/v1_1"
	requestTimeout = 30 * time.Second
)

// CloudinaryConfig carries the account credentials.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// CloudinaryStore implements ports.MediaStore over the Cloudinary HTTP
// API.
type CloudinaryStore struct {
	cfg    CloudinaryConfig
	client *http.Client
	logger zerolog.Logger
}

func NewCloudinaryStore(cfg CloudinaryConfig, logger zerolog.Logger) *CloudinaryStore {
	return &CloudinaryStore{
		cfg:    cfg,
		client: &http.Client{Timeout: requestTimeout},
		logger: logger,
	}
}

type uploadResponse struct {
	URL      string `json:"secure_url"`
	PublicID string `json:"public_id"`
	Error    struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload stores a base64 data URI under a timestamp-uuid public id inside
// the given folder and returns the hosted URL.
func (s *CloudinaryStore) Upload(ctx context.Context, data, folder string) (ports.UploadResult, error) {
	publicID := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString())

	params := url.Values{}
	params.Set("public_id", publicID)
	if folder != "" {
		params.Set("folder", folder)
	}
	s.sign(params)
	params.Set("file", data)

	var resp uploadResponse
	if err := s.post(ctx, "upload", params, &resp); err != nil {
		return ports.UploadResult{}, err
	}
	if resp.Error.Message != "" {
		return ports.UploadResult{}, fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}

	s.logger.Debug().Str("public_id", resp.PublicID).Msg("asset uploaded")
	return ports.UploadResult{URL: resp.URL, PublicID: resp.PublicID}, nil
}

type destroyResponse struct {
	Result string `json:"result"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Destroy removes the asset addressed by its hosted URL. The public id is
// the last two path segments of the URL with the extension stripped
// (folder/basename).
func (s *CloudinaryStore) Destroy(ctx context.Context, assetURL string) error {
	publicID := publicIDFromURL(assetURL)
	if publicID == "" {
		return fmt.Errorf("cloudinary destroy: cannot derive public id from %q", assetURL)
	}

	params := url.Values{}
	params.Set("public_id", publicID)
	s.sign(params)

	var resp destroyResponse
	if err := s.post(ctx, "destroy", params, &resp); err != nil {
		return err
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy: %s", resp.Error.Message)
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy: unexpected result %q", resp.Result)
	}
	return nil
}

// Hosted reports whether the URL points at this account's media space.
func (s *CloudinaryStore) Hosted(assetURL string) bool {
	return strings.Contains(assetURL, "res.cloudinary.com/"+s.cfg.CloudName+"/")
}

// sign adds timestamp, api_key and the SHA-1 request signature. The
// signature covers every parameter set so far, sorted by name, with the
// API secret appended.
func (s *CloudinaryStore) sign(params url.Values) {
	params.Set("timestamp", strconv.FormatInt(time.Now().Unix(), 10))

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, name+"="+params.Get(name))
	}
	digest := sha1.Sum([]byte(strings.Join(pairs, "&") + s.cfg.APISecret))

	params.Set("api_key", s.cfg.APIKey)
	params.Set("signature", hex.EncodeToString(digest[:]))
}

func (s *CloudinaryStore) post(ctx context.Context, action string, params url.Values, out any) error {
	endpoint := fmt.Sprintf("%s/%s/image/%s", apiBase, s.cfg.CloudName, action)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return fmt.Errorf("cloudinary %s: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("cloudinary %s: %w", action, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("cloudinary %s: decode response: %w", action, err)
	}
	return nil
}

func publicIDFromURL(assetURL string) string {
	segments := strings.Split(assetURL, "/")
	if len(segments) < 2 {
		return ""
	}
	base := segments[len(segments)-1]
	if dot := strings.LastIndex(base, "."); dot > 0 {
		base = base[:dot]
	}
	if base == "" {
		return ""
	}
	folder := segments[len(segments)-2]
	if folder == "" {
		return base
	}
	return folder + "/" + base
}
