// Package settings persists the viewer's interpolation and display
// preferences between runs.
package settings

import (
	"encoding/json"

	"github.com/automoto/orbitsync/config"
	"github.com/automoto/orbitsync/logging"
	"github.com/quasilyte/gdata"
)

const settingsKey = "settings"

// SavedSettings represents the settings data stored on disk
type SavedSettings struct {
	InterpolationEnabled bool    `json:"interpolationEnabled"`
	Extrapolation        bool    `json:"extrapolation"`
	OffsetSeconds        float64 `json:"offsetSeconds"`
	MetersPerPixel       float64 `json:"metersPerPixel"`
	ShowHUD              bool    `json:"showHud"`
}

// itemStore is the subset of gdata.Manager used for settings.
type itemStore interface {
	LoadItem(name string) ([]byte, error)
	SaveItem(name string, data []byte) error
}

var store itemStore

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "orbitsync",
	})
	if err != nil {
		logging.For("settings").WithError(err).Warn("could not initialize persistence")
		return err
	}
	store = m
	return nil
}

// LoadSettings loads settings from disk. A nil result with a nil error means
// nothing has been saved yet.
func LoadSettings() (*SavedSettings, error) {
	if store == nil {
		return nil, nil
	}
	log := logging.For("settings")

	data, err := store.LoadItem(settingsKey)
	if err != nil {
		log.WithError(err).Warn("could not load settings")
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	var saved SavedSettings
	if err := json.Unmarshal(data, &saved); err != nil {
		log.WithError(err).Warn("could not parse saved settings")
		return nil, err
	}
	return &saved, nil
}

// SaveSettings saves settings to disk
func SaveSettings(s *SavedSettings) error {
	if store == nil || s == nil {
		return nil
	}
	log := logging.For("settings")

	data, err := json.Marshal(s)
	if err != nil {
		log.WithError(err).Warn("could not serialize settings")
		return err
	}
	if err := store.SaveItem(settingsKey, data); err != nil {
		log.WithError(err).Warn("could not save settings")
		return err
	}
	return nil
}

// Current captures the live configuration as a SavedSettings value.
func Current() *SavedSettings {
	return &SavedSettings{
		InterpolationEnabled: config.Interpolation.Enabled,
		Extrapolation:        config.Interpolation.Extrapolation,
		OffsetSeconds:        config.Interpolation.OffsetSeconds,
		MetersPerPixel:       config.Viewer.MetersPerPixel,
		ShowHUD:              config.Debug.ShowHUD,
	}
}

// SaveCurrentSettings saves the live configuration.
func SaveCurrentSettings() {
	_ = SaveSettings(Current())
}

// ApplySavedSettings copies loaded settings into the global configuration.
// Values that would break playback are ignored.
func ApplySavedSettings(saved *SavedSettings) {
	if saved == nil {
		return
	}

	config.Interpolation.Enabled = saved.InterpolationEnabled
	config.Interpolation.Extrapolation = saved.Extrapolation
	if saved.OffsetSeconds >= 0 {
		config.Interpolation.OffsetSeconds = saved.OffsetSeconds
	}
	if saved.MetersPerPixel > 0 {
		config.Viewer.MetersPerPixel = saved.MetersPerPixel
	}
	config.Debug.ShowHUD = saved.ShowHUD
}
