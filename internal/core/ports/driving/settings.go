package driving

import "github.com/custodia-labs/tdsprep/internal/core/domain"

// SettingsService reads and updates the configuration file.
// An empty path selects the default file.
type SettingsService interface {
	// Options reads pipeline options from the file at path.
	// A file named explicitly must exist; the default file may be absent.
	Options(path string) (domain.PipelineOptions, error)

	// Set validates value for key and saves it to the file at path,
	// creating the file when needed. It returns the file written.
	Set(path, key, value string) (string, error)

	// Keys returns the recognised setting keys in sorted order.
	Keys() []string
}
