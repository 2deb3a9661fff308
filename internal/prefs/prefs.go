// Package prefs persists the cashier's printing preferences across agent
// restarts. The frontend kept these in localStorage; here they live in a
// small config file under the storage path.
package prefs

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"

	"github.com/ryanap7/diwan-print-agent/pkg/apperror"
)

// Storage keys. The thermer key name is a wire contract with the
// frontend's settings screen; do not rename it.
const (
	keyPreferThermer   = "thermal_printer_prefer_thermer"
	keyPreferredMethod = "preferred_print_method"

	fileName = "preferences.json"
)

// Preferences are the user-tunable dispatch knobs.
type Preferences struct {
	// PreferThermer routes Android auto-dispatch to Thermer instead of
	// RawBT.
	PreferThermer bool `json:"preferThermer"`
	// PreferredMethod forces a dispatch method when non-empty. One of
	// "web-bluetooth", "rawbt", "thermer", "share".
	PreferredMethod string `json:"preferredMethod"`
}

var validMethods = map[string]bool{
	"":              true,
	"web-bluetooth": true,
	"rawbt":         true,
	"thermer":       true,
	"share":         true,
}

// ValidMethod reports whether m is an accepted preferred method value.
func ValidMethod(m string) bool {
	return validMethods[m]
}

// Store is a file-backed preference store. Safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	v    *viper.Viper
	path string
}

// NewStore opens (or lazily creates) the preference file under dir.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, fileName)
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetDefault(keyPreferThermer, false)
	v.SetDefault(keyPreferredMethod, "")

	// A missing file means first run; defaults apply. Anything else
	// (unreadable or corrupt file) is a real error.
	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return &Store{v: v, path: path}, nil
}

// Get returns the current preferences.
func (s *Store) Get() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Preferences{
		PreferThermer:   s.v.GetBool(keyPreferThermer),
		PreferredMethod: s.v.GetString(keyPreferredMethod),
	}
}

// Update validates and persists new preferences.
func (s *Store) Update(p Preferences) error {
	if !ValidMethod(p.PreferredMethod) {
		return apperror.NewBadRequestError("unknown print method: " + p.PreferredMethod)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set(keyPreferThermer, p.PreferThermer)
	s.v.Set(keyPreferredMethod, p.PreferredMethod)
	return s.v.WriteConfigAs(s.path)
}
