// Package settings loads and stores the user's preferences file:
//
//	{"currency": "€", "weight_unit": "kg", "volume_unit": "l"}
//
// A missing or corrupt file never fails startup; defaults are used instead.
package settings

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"cookncart/internal/conversion"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	DefaultCurrency   = "€"
	DefaultWeightUnit = "kg"
	DefaultVolumeUnit = "l"
)

type Settings struct {
	Currency   string `mapstructure:"currency"`
	WeightUnit string `mapstructure:"weight_unit"`
	VolumeUnit string `mapstructure:"volume_unit"`
}

func Defaults() Settings {
	return Settings{
		Currency:   DefaultCurrency,
		WeightUnit: DefaultWeightUnit,
		VolumeUnit: DefaultVolumeUnit,
	}
}

// sanitize replaces empty values and units that do not belong to their class.
func (s Settings) sanitize() Settings {
	s.Currency = strings.TrimSpace(s.Currency)
	if s.Currency == "" {
		s.Currency = DefaultCurrency
	}
	if !conversion.IsWeightUnit(s.WeightUnit) {
		s.WeightUnit = DefaultWeightUnit
	}
	if !conversion.IsVolumeUnit(s.VolumeUnit) {
		s.VolumeUnit = DefaultVolumeUnit
	}
	return s
}

// Store is the process-wide settings holder backed by a JSON file.
type Store struct {
	mu      sync.RWMutex
	path    string
	current Settings
}

// Load reads path. Any read or decode problem is logged and yields defaults.
func Load(path string) *Store {
	st := &Store{path: path, current: Defaults()}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetDefault("currency", DefaultCurrency)
	v.SetDefault("weight_unit", DefaultWeightUnit)
	v.SetDefault("volume_unit", DefaultVolumeUnit)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("settings file unreadable, using defaults")
		return st
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("settings file malformed, using defaults")
		return st
	}
	st.current = s.sanitize()
	return st
}

// Current returns a copy of the active settings.
func (st *Store) Current() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current
}

// Update sanitizes s, writes it to disk and makes it current.
func (st *Store) Update(s Settings) error {
	s = s.sanitize()
	if err := Save(st.path, s); err != nil {
		return err
	}
	st.mu.Lock()
	st.current = s
	st.mu.Unlock()
	return nil
}

// Save writes s to path as JSON. path must carry a .json extension.
func Save(path string, s Settings) error {
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return fmt.Errorf("settings: %q is not a .json file", path)
	}
	v := viper.New()
	v.SetConfigType("json")
	v.Set("currency", s.Currency)
	v.Set("weight_unit", s.WeightUnit)
	v.Set("volume_unit", s.VolumeUnit)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("settings: write %s: %w", path, err)
	}
	return nil
}
