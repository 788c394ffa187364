package driven

// ConfigStore holds settings under flattened "section.key" names.
// Typed getters return the zero value for missing or mistyped keys; use Get
// to tell the two apart.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool

	// Set stores value under key. Persistent stores write it out before
	// returning.
	Set(key string, value any) error
}
