package excel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/timesheet-sync-api/internal/config"
)

const tokenRefreshBuffer = 5 * time.Minute

// sharePointClient moves the workbook between SharePoint and a local temp
// file using Azure AD client-credentials auth. Without credentials it still
// attempts a direct download, which only works for anonymously shared files.
type sharePointClient struct {
	fileURL string
	cfg     *config.SharePointConfig
	client  *http.Client
	log     zerolog.Logger

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func newSharePointClient(fileURL string, cfg *config.SharePointConfig, log zerolog.Logger) (*sharePointClient, error) {
	if _, err := url.Parse(fileURL); err != nil {
		return nil, fmt.Errorf("invalid SharePoint URL: %w", err)
	}

	c := &sharePointClient{
		fileURL: fileURL,
		cfg:     cfg,
		client:  &http.Client{Timeout: 60 * time.Second},
		log:     log.With().Str("component", "sharepoint").Logger(),
	}
	if !cfg.HasCredentials() {
		c.log.Warn().Msg("SharePoint credentials not configured, downloads may fail")
	}
	return c, nil
}

func (c *sharePointClient) authenticated() bool {
	return c.cfg.HasCredentials()
}

// accessToken returns a cached token, refreshing it when within the expiry
// buffer
func (c *sharePointClient) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry.Add(-tokenRefreshBuffer)) {
		return c.token, nil
	}

	tokenURL := fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", c.cfg.TenantID)
	form := url.Values{
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"scope":         {c.site() + "/.default"},
		"grant_type":    {"client_credentials"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("access token request failed: status %d: %s", resp.StatusCode, body)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if payload.ExpiresIn == 0 {
		payload.ExpiresIn = 3600
	}

	c.token = payload.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	c.log.Info().Msg("Obtained SharePoint access token")
	return c.token, nil
}

// site returns the configured site root, deriving it from the file URL when
// unset
func (c *sharePointClient) site() string {
	if c.cfg.Site != "" {
		return c.cfg.Site
	}
	u, err := url.Parse(c.fileURL)
	if err != nil {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// apiURL converts the web URL of the file into its REST API form:
// https://tenant.sharepoint.com/sites/Name/_api/web/GetFileByServerRelativeUrl('path')/$value
func (c *sharePointClient) apiURL() string {
	u, err := url.Parse(c.fileURL)
	if err != nil {
		return c.fileURL
	}

	parts := strings.Split(u.Path, "/")
	siteIdx := -1
	for i, part := range parts {
		if part == "sites" && i+1 < len(parts) {
			siteIdx = i
			break
		}
	}
	if siteIdx == -1 {
		// Not a /sites/ URL; fall back to a direct download link
		return strings.SplitN(c.fileURL, "?", 2)[0] + "?download=1"
	}

	siteName := parts[siteIdx+1]
	rest := parts[siteIdx+2:]
	encoded := make([]string, len(rest))
	for i, part := range rest {
		encoded[i] = url.PathEscape(strings.SplitN(part, "?", 2)[0])
	}

	return fmt.Sprintf("%s://%s/sites/%s/_api/web/GetFileByServerRelativeUrl('%s')/$value",
		u.Scheme, u.Host, siteName, strings.Join(encoded, "/"))
}

// download fetches the workbook to dest
func (c *sharePointClient) download(ctx context.Context, dest string) error {
	downloadURL := c.fileURL
	var authHeader string

	if c.authenticated() {
		token, err := c.accessToken(ctx)
		if err != nil {
			return err
		}
		authHeader = "Bearer " + token
		downloadURL = c.apiURL()
	} else {
		c.log.Warn().Msg("Downloading from SharePoint without authentication")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return err
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("download from SharePoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("download from SharePoint: status %d: %s", resp.StatusCode, body)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create local workbook copy: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("write local workbook copy: %w", err)
	}
	c.log.Debug().Str("dest", dest).Msg("Downloaded workbook from SharePoint")
	return nil
}

// upload pushes the local workbook copy back to SharePoint
func (c *sharePointClient) upload(ctx context.Context, src string) error {
	if !c.authenticated() {
		return fmt.Errorf("cannot upload to SharePoint without authentication")
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read local workbook copy: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.apiURL(), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("upload to SharePoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("upload to SharePoint: status %d: %s", resp.StatusCode, body)
	}
	c.log.Info().Msg("Uploaded workbook to SharePoint")
	return nil
}
