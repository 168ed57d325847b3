package corpcode

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/Dan9191/corp-finance-service/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Store persists parsed companies
type Store interface {
	UpsertCompanies(ctx context.Context, companies []models.Company) (int, error)
}

// Downloader fetches the registry document from the disclosure API
type Downloader interface {
	Enabled() bool
	DownloadCorpCodes(ctx context.Context) ([]byte, error)
}

// Loader imports the corp-code registry into the store
type Loader struct {
	store      Store
	downloader Downloader
	path       string
	log        *logrus.Logger
}

// NewLoader creates a loader. path is the fallback XML file used when
// downloading is not possible; downloader may be nil.
func NewLoader(store Store, downloader Downloader, path string, log *logrus.Logger) *Loader {
	return &Loader{store: store, downloader: downloader, path: path, log: log}
}

// LoadBytes parses an XML document and upserts its companies
func (l *Loader) LoadBytes(ctx context.Context, data []byte) (int, error) {
	companies, err := Parse(bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	if len(companies) == 0 {
		return 0, fmt.Errorf("no companies found in corp code document")
	}

	n, err := l.store.UpsertCompanies(ctx, companies)
	if err != nil {
		return 0, err
	}
	l.log.Infof("Loaded %d companies into the registry", n)
	return n, nil
}

// LoadFile imports a CORPCODE.xml file from disk
func (l *Loader) LoadFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return l.LoadBytes(ctx, data)
}

// Refresh downloads the registry when the disclosure API is configured and
// falls back to the local file otherwise
func (l *Loader) Refresh(ctx context.Context) (int, error) {
	if l.downloader != nil && l.downloader.Enabled() {
		data, err := l.downloader.DownloadCorpCodes(ctx)
		if err == nil {
			return l.LoadBytes(ctx, data)
		}
		if l.path == "" {
			return 0, fmt.Errorf("failed to download corp codes: %w", err)
		}
		l.log.Warnf("Corp code download failed, using %s: %v", l.path, err)
	}
	if l.path == "" {
		return 0, fmt.Errorf("no corp code source configured")
	}
	return l.LoadFile(ctx, l.path)
}

// Schedule registers a periodic Refresh on the given cron spec and returns
// the started scheduler
func (l *Loader) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if _, err := l.Refresh(context.Background()); err != nil {
			l.log.Errorf("Scheduled corp code refresh failed: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}
	c.Start()
	l.log.Infof("Corp code refresh scheduled: %s", spec)
	return c, nil
}
