// Package excel is the spreadsheet store: a local or SharePoint-hosted xlsx
// workbook addressed by worksheet name.
//
// The workbook is reloaded from disk (or re-downloaded) before every
// operation so edits made directly in Excel are visible immediately. There is
// no cross-process locking; a sync running concurrently with a manual edit
// races, and the later write wins.
package excel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/timesheet-sync-api/internal/config"
)

// Row is one worksheet data row keyed by header name
type Row map[string]string

// Store is the worksheet contract consumed by the services
type Store interface {
	// GetRows reads all data rows of a worksheet, keyed by the header row.
	// A missing worksheet yields no rows, not an error.
	GetRows(ctx context.Context, sheet string) ([]Row, error)

	// AppendRow ensures the worksheet exists with the given headers and
	// appends one row after the last used row.
	AppendRow(ctx context.Context, sheet string, headers []string, row []interface{}) error

	// ReplaceRows rewrites a worksheet: header row kept, every data row
	// discarded and replaced. Destructive by design.
	ReplaceRows(ctx context.Context, sheet string, headers []string, rows [][]interface{}) error
}

// Client implements Store over an xlsx file via excelize
type Client struct {
	localPath string
	remote    *sharePointClient // nil for local workbooks
	log       zerolog.Logger

	// Guards in-process access only; external editors are not excluded.
	mu sync.Mutex
}

// NewClient creates a workbook client. A file path beginning with http:// or
// https:// is treated as a SharePoint URL and mirrored through a temp file.
func NewClient(cfg *config.ExcelConfig, sp *config.SharePointConfig, log zerolog.Logger) (*Client, error) {
	c := &Client{
		log: log.With().Str("component", "excel").Logger(),
	}

	if strings.HasPrefix(cfg.FilePath, "http://") || strings.HasPrefix(cfg.FilePath, "https://") {
		remote, err := newSharePointClient(cfg.FilePath, sp, c.log)
		if err != nil {
			return nil, err
		}
		tmp, err := os.CreateTemp("", "timesheet-*.xlsx")
		if err != nil {
			return nil, fmt.Errorf("create workbook temp file: %w", err)
		}
		tmp.Close()
		c.remote = remote
		c.localPath = tmp.Name()
		c.log.Info().Str("url", cfg.FilePath).Bool("authenticated", remote.authenticated()).
			Msg("Workbook client initialized with SharePoint URL")
		return c, nil
	}

	c.localPath = cfg.FilePath
	c.log.Info().Str("path", cfg.FilePath).Msg("Workbook client initialized with local path")
	return c, nil
}

// Close removes the temp mirror of a remote workbook
func (c *Client) Close() error {
	if c.remote != nil {
		return os.Remove(c.localPath)
	}
	return nil
}

// GetRows reads all data rows of a worksheet
func (c *Client) GetRows(ctx context.Context, sheet string) ([]Row, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := c.open(ctx)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(sheet); idx == -1 {
		c.log.Warn().Str("sheet", sheet).Msg("Worksheet not found")
		return nil, nil
	}

	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read worksheet %q: %w", sheet, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	headers := raw[0]
	rows := make([]Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		if isEmptyRow(cells) {
			continue
		}
		row := make(Row, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(cells) {
				row[h] = strings.TrimSpace(cells[i])
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AppendRow appends one row after the last used row of a worksheet
func (c *Client) AppendRow(ctx context.Context, sheet string, headers []string, row []interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := ensureSheet(f, sheet, headers); err != nil {
		return err
	}

	used, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read worksheet %q: %w", sheet, err)
	}
	cell := fmt.Sprintf("A%d", len(used)+1)
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("append row to %q: %w", sheet, err)
	}

	if err := c.save(ctx, f); err != nil {
		return err
	}
	c.log.Debug().Str("sheet", sheet).Msg("Appended workbook row")
	return nil
}

// ReplaceRows rewrites a worksheet's data rows below the header
func (c *Client) ReplaceRows(ctx context.Context, sheet string, headers []string, rows [][]interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := ensureSheet(f, sheet, headers); err != nil {
		return err
	}

	// Clear existing data rows, bottom-up so indexes stay stable
	existing, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read worksheet %q: %w", sheet, err)
	}
	for i := len(existing); i >= 2; i-- {
		if err := f.RemoveRow(sheet, i); err != nil {
			return fmt.Errorf("clear worksheet %q: %w", sheet, err)
		}
	}

	hdr := make([]interface{}, len(headers))
	for i, h := range headers {
		hdr[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &hdr); err != nil {
		return fmt.Errorf("write headers to %q: %w", sheet, err)
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d to %q: %w", i+2, sheet, err)
		}
	}

	if err := c.save(ctx, f); err != nil {
		return err
	}
	c.log.Info().Str("sheet", sheet).Int("rows", len(rows)).Msg("Replaced worksheet data")
	return nil
}

// open reloads the workbook from its source, downloading first for remote
// files and creating an empty workbook when the file does not exist yet.
func (c *Client) open(ctx context.Context) (*excelize.File, error) {
	if c.remote != nil {
		if err := c.remote.download(ctx, c.localPath); err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(c.localPath); os.IsNotExist(err) {
		if dir := filepath.Dir(c.localPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create workbook directory: %w", err)
			}
		}
		f := excelize.NewFile()
		if err := f.SaveAs(c.localPath); err != nil {
			return nil, fmt.Errorf("create workbook: %w", err)
		}
		c.log.Info().Str("path", c.localPath).Msg("Created new workbook")
		return f, nil
	}

	f, err := excelize.OpenFile(c.localPath)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return f, nil
}

func (c *Client) save(ctx context.Context, f *excelize.File) error {
	if err := f.SaveAs(c.localPath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	if c.remote != nil {
		if err := c.remote.upload(ctx, c.localPath); err != nil {
			// The local copy is written; the remote is now behind.
			c.log.Error().Err(err).Msg("Workbook saved locally but not uploaded to SharePoint")
			return err
		}
	}
	return nil
}

func ensureSheet(f *excelize.File, sheet string, headers []string) error {
	if idx, _ := f.GetSheetIndex(sheet); idx != -1 {
		return nil
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create worksheet %q: %w", sheet, err)
	}
	if len(headers) > 0 {
		hdr := make([]interface{}, len(headers))
		for i, h := range headers {
			hdr[i] = h
		}
		if err := f.SetSheetRow(sheet, "A1", &hdr); err != nil {
			return fmt.Errorf("write headers to %q: %w", sheet, err)
		}
	}
	return nil
}

func isEmptyRow(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
