package deps

import (
	"time"

	"github.com/smerle/marque/internal/index"
	"github.com/smerle/marque/internal/logger"
	"github.com/smerle/marque/internal/metadata"
	"github.com/smerle/marque/internal/selection"
	"github.com/smerle/marque/internal/service"
	"github.com/smerle/marque/internal/store"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	Store       store.Store        // document store behind the services
	MemoryIndex *index.MemoryIndex // latest per-user snapshot

	Bookmarks  *service.Bookmarks
	Folders    *service.Folders
	Tags       *service.Tags
	Selections *selection.Registry
	Fetcher    *metadata.Fetcher

	RefreshTrigger chan struct{} // fires a snapshot refresh (nil in tests)

	AllowedHosts []string // Host headers allowed to access the server
	CORSOrigins  []string // origins allowed on the metadata endpoint
	TrustProxy   bool     // true if running behind a trusted reverse proxy
	MetadataRPM  int      // per-IP budget per minute on /metadata
}
