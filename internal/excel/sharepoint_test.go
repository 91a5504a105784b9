package excel

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/timesheet-sync-api/internal/config"
)

func newTestSharePointClient(t *testing.T, fileURL string, cfg *config.SharePointConfig) *sharePointClient {
	t.Helper()
	c, err := newSharePointClient(fileURL, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("newSharePointClient failed: %v", err)
	}
	return c
}

func TestSharePointAPIURL(t *testing.T) {
	c := newTestSharePointClient(t,
		"https://contoso.sharepoint.com/sites/Ops/Shared%20Documents/timesheet.xlsx",
		&config.SharePointConfig{})

	want := "https://contoso.sharepoint.com/sites/Ops/_api/web/GetFileByServerRelativeUrl('Shared%20Documents/timesheet.xlsx')/$value"
	if got := c.apiURL(); got != want {
		t.Errorf("apiURL:\n got %s\nwant %s", got, want)
	}
}

func TestSharePointAPIURL_StripsQueryParams(t *testing.T) {
	c := newTestSharePointClient(t,
		"https://contoso.sharepoint.com/sites/Ops/Docs/timesheet.xlsx?web=1&e=abc",
		&config.SharePointConfig{})

	want := "https://contoso.sharepoint.com/sites/Ops/_api/web/GetFileByServerRelativeUrl('Docs/timesheet.xlsx')/$value"
	if got := c.apiURL(); got != want {
		t.Errorf("apiURL:\n got %s\nwant %s", got, want)
	}
}

func TestSharePointAPIURL_NonSitesURLFallsBackToDirectDownload(t *testing.T) {
	c := newTestSharePointClient(t,
		"https://contoso.sharepoint.com/personal/user/timesheet.xlsx?e=abc",
		&config.SharePointConfig{})

	want := "https://contoso.sharepoint.com/personal/user/timesheet.xlsx?download=1"
	if got := c.apiURL(); got != want {
		t.Errorf("apiURL:\n got %s\nwant %s", got, want)
	}
}

func TestSharePointSite(t *testing.T) {
	// Explicit configuration wins
	c := newTestSharePointClient(t,
		"https://contoso.sharepoint.com/sites/Ops/Docs/timesheet.xlsx",
		&config.SharePointConfig{Site: "https://other.sharepoint.com"})
	if got := c.site(); got != "https://other.sharepoint.com" {
		t.Errorf("Expected the configured site, got %s", got)
	}

	// Otherwise the site root is derived from the file URL
	c = newTestSharePointClient(t,
		"https://contoso.sharepoint.com/sites/Ops/Docs/timesheet.xlsx",
		&config.SharePointConfig{})
	if got := c.site(); got != "https://contoso.sharepoint.com" {
		t.Errorf("Expected the derived site root, got %s", got)
	}
}

func TestSharePointAuthenticated(t *testing.T) {
	c := newTestSharePointClient(t, "https://contoso.sharepoint.com/sites/Ops/f.xlsx",
		&config.SharePointConfig{})
	if c.authenticated() {
		t.Error("Expected unauthenticated without credentials")
	}

	c = newTestSharePointClient(t, "https://contoso.sharepoint.com/sites/Ops/f.xlsx",
		&config.SharePointConfig{TenantID: "t", ClientID: "c", ClientSecret: "s"})
	if !c.authenticated() {
		t.Error("Expected authenticated with full credentials")
	}
}
