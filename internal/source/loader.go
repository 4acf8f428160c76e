package source

import (
	"fmt"
	"sync"
	"time"

	"github.com/hyperjump/erabu/internal/catalog"
	"github.com/hyperjump/erabu/internal/normalize"
	"go.uber.org/zap"
)

// maxLoggedRejections caps the rejection reasons included in the load warning.
const maxLoggedRejections = 5

// Report summarizes one catalog load.
type Report struct {
	Version  string                `json:"version"`
	Path     string                `json:"path"`
	Format   string                `json:"format"`
	Loaded   int                   `json:"loaded"`
	Rejected []normalize.Rejection `json:"rejected,omitempty"`
	LoadedAt time.Time             `json:"loaded_at"`
}

// Loader reads a catalog file and publishes it into a store.
type Loader struct {
	path   string
	format string
	store  *catalog.Store
	logger *zap.Logger
	mu     sync.Mutex
}

// NewLoader creates a loader for the catalog at path. A nil logger discards logs.
func NewLoader(path, format string, store *catalog.Store, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{path: path, format: format, store: store, logger: logger}
}

// Path returns the catalog file path.
func (l *Loader) Path() string {
	return l.path
}

// Reload reads the catalog and swaps it into the store. On error the store keeps
// its current snapshot.
func (l *Loader) Reload() (*Report, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	format := DetectFormat(l.path, l.format)
	res, err := Open(l.path, format)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", l.path, err)
	}
	snap := l.store.Load(res.Products)

	if n := len(res.Rejected); n > 0 {
		shown := res.Rejected
		if n > maxLoggedRejections {
			shown = shown[:maxLoggedRejections]
		}
		reasons := make([]string, len(shown))
		for i, r := range shown {
			reasons[i] = fmt.Sprintf("#%d (id %d): %s", r.Index, r.ID, r.Reason)
		}
		l.logger.Warn("catalog entries rejected",
			zap.String("path", l.path),
			zap.Int("count", n),
			zap.Strings("first", reasons),
		)
	}
	l.logger.Info("catalog loaded",
		zap.String("path", l.path),
		zap.String("format", format),
		zap.Int("products", snap.Count()),
		zap.String("version", snap.Version),
	)
	return &Report{
		Version:  snap.Version,
		Path:     l.path,
		Format:   format,
		Loaded:   snap.Count(),
		Rejected: res.Rejected,
		LoadedAt: snap.LoadedAt,
	}, nil
}
