package domain

const unknownDescription = "Unknown"

// Defaults applied when a setting is missing or invalid.
const (
	DefaultK              = 100
	DefaultResultsPerPage = 50
	DefaultNeighborFrames = 10
	DefaultHubTimeout     = 30
	DefaultHubBaseURL     = "http://localhost:8000"
	DefaultRateLimit      = 5
)

// SearchSettings holds per-query knobs sent with every search.
type SearchSettings struct {
	// K is the number of results requested.
	K int `json:"k"`

	// ReturnS2T asks the hub to include transcripts.
	ReturnS2T bool `json:"returnS2T"`

	// ReturnObject asks the hub to include detected objects.
	ReturnObject bool `json:"returnObject"`

	// FrameClassFilter asks the hub to drop non-content frames (intros, anchors).
	FrameClassFilter bool `json:"frameClassFilter"`
}

// DefaultSearchSettings returns the hub's default knobs.
func DefaultSearchSettings() SearchSettings {
	return SearchSettings{
		K:                DefaultK,
		ReturnS2T:        true,
		ReturnObject:     true,
		FrameClassFilter: true,
	}
}

// HistoryBackend selects where session history is kept.
type HistoryBackend string

// Available history backends.
const (
	// HistoryBackendMemory keeps history for the lifetime of the process.
	HistoryBackendMemory HistoryBackend = "memory"

	// HistoryBackendSQLite keeps history per session in a local database,
	// so CLI invocations sharing a session id see the same history.
	HistoryBackendSQLite HistoryBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b HistoryBackend) IsValid() bool {
	return b == HistoryBackendMemory || b == HistoryBackendSQLite
}

// String returns the string representation.
func (b HistoryBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b HistoryBackend) Description() string {
	switch b {
	case HistoryBackendMemory:
		return "Memory (this process only)"
	case HistoryBackendSQLite:
		return "SQLite (shared by session id)"
	default:
		return unknownDescription
	}
}

// HubSettings configures the backend connection.
type HubSettings struct {
	// BaseURL is the hub origin, e.g. "http://localhost:8000".
	BaseURL string

	// APIPrefix is prepended to every endpoint path when set.
	APIPrefix string

	// TimeoutSeconds bounds each request.
	TimeoutSeconds int

	// RateLimit is the maximum requests per second (0 disables throttling).
	RateLimit int
}

// QueryDefaults holds the query form's initial values.
type QueryDefaults struct {
	// Model is the preselected model.
	Model Model

	// Settings are the initial per-query knobs.
	Settings SearchSettings

	// AutoTranslate translates text queries to English before searching.
	AutoTranslate bool
}

// ViewSettings holds result display configuration.
type ViewSettings struct {
	// ResultsPerPage is the page size shared by both paginators.
	ResultsPerPage int

	// NeighborFrames is how many frames to fetch on each side in the detail view.
	NeighborFrames int
}

// HistorySettings holds history persistence configuration.
type HistorySettings struct {
	Backend HistoryBackend
}

// AppSettings aggregates all application settings.
type AppSettings struct {
	Hub     HubSettings
	Query   QueryDefaults
	View    ViewSettings
	History HistorySettings
}

// DefaultAppSettings returns sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Hub: HubSettings{
			BaseURL:        DefaultHubBaseURL,
			TimeoutSeconds: DefaultHubTimeout,
			RateLimit:      DefaultRateLimit,
		},
		Query: QueryDefaults{
			Model:    ModelSiglipV2,
			Settings: DefaultSearchSettings(),
		},
		View: ViewSettings{
			ResultsPerPage: DefaultResultsPerPage,
			NeighborFrames: DefaultNeighborFrames,
		},
		History: HistorySettings{
			Backend: HistoryBackendMemory,
		},
	}
}
