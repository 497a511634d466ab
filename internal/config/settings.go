// Package config loads the world settings used by the simulator.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/user/lifeplot_go/internal/life"
)

// Settings mirrors settings.json.
type Settings struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	CellSize    int     `json:"cellSize"`
	LiveDensity float64 `json:"liveDensity"`
}

// Default is used when no settings file is given.
func Default() Settings {
	return Settings{Width: 100, Height: 80, CellSize: 2, LiveDensity: 0.5}
}

// Validate checks that the settings describe a non-empty board.
func (s Settings) Validate() error {
	if s.CellSize <= 0 || s.Width < s.CellSize || s.Height < s.CellSize {
		return fmt.Errorf("%w: width=%d height=%d cellSize=%d", life.ErrInvalidSettings, s.Width, s.Height, s.CellSize)
	}
	if s.LiveDensity < 0 || s.LiveDensity > 1 {
		return fmt.Errorf("%w: liveDensity %v outside [0, 1]", life.ErrInvalidSettings, s.LiveDensity)
	}
	return nil
}

// NewBoard builds an empty board sized by s.
func (s Settings) NewBoard() (*life.Board, error) {
	return life.NewBoard(s.Width, s.Height, s.CellSize)
}

// Decode reads settings from r. Missing keys keep their default values.
func Decode(r io.Reader) (Settings, error) {
	s := Default()
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Load reads settings from path, or returns Default when path is empty.
func Load(path string) (Settings, error) {
	if path == "" {
		return Default(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to open settings: %w", err)
	}
	defer file.Close()
	return Decode(file)
}
