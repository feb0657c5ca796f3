// Package settings manages the operator's scenario settings file.
//
// Settings are plain values. The With* helpers return an updated copy plus
// the previous value so callers can restore it; only Load and Save touch
// the file system.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds paths and keys used when writing and running scenarios.
type Settings struct {
	ShakeHome  string
	VS30File   string
	GMPE       string
	PDLBin     string
	PrivateKey string
	PDLConf    string
	Catalog    string
}

// WithShakeHome returns s with the ShakeMap home replaced, and the old value.
func (s Settings) WithShakeHome(path string) (Settings, string) {
	old := s.ShakeHome
	s.ShakeHome = path
	return s, old
}

// WithVS30File returns s with the Vs30 grid path replaced, and the old value.
func (s Settings) WithVS30File(path string) (Settings, string) {
	old := s.VS30File
	s.VS30File = path
	return s, old
}

// WithGMPE returns s with the GMPE set replaced, and the old value.
func (s Settings) WithGMPE(gmpe string) (Settings, string) {
	old := s.GMPE
	s.GMPE = gmpe
	return s, old
}

// fileFormat is the on-disk layout.
type fileFormat struct {
	System struct {
		ShakeHome  string `toml:"shakehome"`
		PDLBin     string `toml:"pdlbin,omitempty"`
		PrivateKey string `toml:"key,omitempty"`
		PDLConf    string `toml:"pdlconf,omitempty"`
		Catalog    string `toml:"catalog,omitempty"`
	} `toml:"system"`
	Data struct {
		VS30File string `toml:"vs30file"`
	} `toml:"data"`
	Modeling struct {
		GMPE string `toml:"gmpe"`
	} `toml:"modeling"`
}

// DefaultPath returns ~/.quake-scenarios/scenarios.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".quake-scenarios", "scenarios.toml"), nil
}

// Load reads the settings file. A missing file yields empty settings.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var f fileFormat
	if err := toml.Unmarshal(data, &f); err != nil {
		return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return Settings{
		ShakeHome:  f.System.ShakeHome,
		VS30File:   f.Data.VS30File,
		GMPE:       f.Modeling.GMPE,
		PDLBin:     f.System.PDLBin,
		PrivateKey: f.System.PrivateKey,
		PDLConf:    f.System.PDLConf,
		Catalog:    f.System.Catalog,
	}, nil
}

// Save writes s to path with owner-only permissions, creating the parent
// directory if needed.
func Save(path string, s Settings) error {
	var f fileFormat
	f.System.ShakeHome = s.ShakeHome
	f.System.PDLBin = s.PDLBin
	f.System.PrivateKey = s.PrivateKey
	f.System.PDLConf = s.PDLConf
	f.System.Catalog = s.Catalog
	f.Data.VS30File = s.VS30File
	f.Modeling.GMPE = s.GMPE

	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
