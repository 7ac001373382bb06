package config

import (
	_ "embed"
	"fmt"
	"strconv"

	"gopkg.in/ini.v1"

	"github.com/scummvm/scummvm-sub094/internal/types"
)

//go:embed defaults/versions.ini
var defaultVersions []byte

// LoadProfiles reads the built in version profiles, overlaid with the
// given INI sources (file names, byte slices or readers). Each section
// is named after a version and holds its actions and quit_args keys.
func LoadProfiles(sources ...interface{}) (map[types.Version]types.Profile, error) {
	f, err := ini.LoadSources(ini.LoadOptions{SkipUnrecognizableLines: true}, defaultVersions, sources...)
	if err != nil {
		return nil, fmt.Errorf("load version profiles: %w", err)
	}

	profiles := map[types.Version]types.Profile{}
	for _, section := range f.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		v, err := types.StringToVersion(section.Name())
		if err != nil {
			return nil, fmt.Errorf("version profiles: %w", err)
		}

		p := types.Profile{Version: v}
		if p.Actions, err = number(section, "actions"); err != nil {
			return nil, err
		}
		if p.QuitArgs, err = number(section, "quit_args"); err != nil {
			return nil, err
		}
		profiles[v] = p
	}
	return profiles, nil
}

// number parses a decimal or 0x prefixed key.
func number(section *ini.Section, key string) (int, error) {
	if !section.HasKey(key) {
		return 0, fmt.Errorf("version %s: missing %s", section.Name(), key)
	}
	n, err := strconv.ParseInt(section.Key(key).String(), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("version %s: %s: %w", section.Name(), key, err)
	}
	return int(n), nil
}
