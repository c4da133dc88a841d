package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// translationManifest is the TOML layout of a --translations file:
//
//	[translations]
//	"org.tigris.gef.presentation.FigGroup" = "group"
//	"org.tigris.gef.presentation.FigRect" = "rect"
type translationManifest struct {
	Translations map[string]string `toml:"translations"`
}

func loadTranslations(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	var m translationManifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("translations manifest: %w", err)
	}
	return m.Translations, nil
}
