package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/playwright-community/playwright-go"
)

// DownloadRecord describes one file captured from the remote browser.
type DownloadRecord struct {
	// URL the download originated from.
	URL string

	// Path is where the file was saved locally.
	Path string

	// Filename is the name suggested by the remote browser.
	Filename string

	// Size is the saved file size in bytes.
	Size int64

	// PDFPages is the page count for PDF downloads, 0 otherwise.
	PDFPages int

	// SavedAt is when the capture completed.
	SavedAt time.Time
}

// DownloadStore saves files the remote browser downloads into a local
// directory and keeps a record of each capture.
type DownloadStore struct {
	dir string

	mu      sync.Mutex
	records []DownloadRecord
}

// NewDownloadStore creates the downloads directory if needed.
func NewDownloadStore(dir string) (*DownloadStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create downloads directory: %w", err)
	}
	return &DownloadStore{dir: dir}, nil
}

// Capture saves the download and records it. PDFs are validated and page
// counted so the surfer's observation can describe them.
func (d *DownloadStore) Capture(dl playwright.Download) (*DownloadRecord, error) {
	filename := sanitizeFilename(dl.SuggestedFilename())
	if filename == "" {
		filename = fmt.Sprintf("download-%d", time.Now().UnixNano())
	}
	path := filepath.Join(d.dir, filename)

	if err := dl.SaveAs(path); err != nil {
		return nil, fmt.Errorf("failed to save download: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat saved download: %w", err)
	}

	record := DownloadRecord{
		URL:      dl.URL(),
		Path:     path,
		Filename: filename,
		Size:     info.Size(),
		SavedAt:  time.Now(),
	}

	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		// Page count doubles as a validity check on the saved file.
		pages, perr := api.PageCountFile(path)
		if perr != nil {
			return nil, fmt.Errorf("downloaded PDF %s is not valid: %w", filename, perr)
		}
		record.PDFPages = pages
	}

	d.mu.Lock()
	d.records = append(d.records, record)
	d.mu.Unlock()

	return &record, nil
}

// sanitizeFilename strips any path components from a remote-suggested
// filename. The remote browser is untrusted; a name like "../../x" must
// not escape the downloads directory.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	if name == "." || name == ".." || name == "/" {
		return ""
	}
	return name
}

// Records returns captured downloads, oldest first.
func (d *DownloadStore) Records() []DownloadRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]DownloadRecord, len(d.records))
	copy(out, d.records)
	return out
}

// Dir returns the directory downloads are saved into.
func (d *DownloadStore) Dir() string {
	return d.dir
}
