package render

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SiteManifest configures the rendered site. All fields are optional; a
// missing manifest file yields the defaults.
type SiteManifest struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	// Pages selects which pages to render; empty means all of them.
	Pages []string `yaml:"pages"`
	// MaxPotionGroups caps the potions page; 0 means no cap.
	MaxPotionGroups int `yaml:"max_potion_groups"`
}

// DefaultManifest returns the manifest used when no file is configured.
func DefaultManifest() SiteManifest {
	return SiteManifest{
		Title:       "Alchemist",
		Description: "Every potion worth brewing, ranked.",
	}
}

// LoadManifest reads a YAML manifest from path. An empty path returns the
// defaults; a missing file is an error since the path was configured
// explicitly.
func LoadManifest(path string) (SiteManifest, error) {
	manifest := DefaultManifest()
	if path == "" {
		return manifest, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return SiteManifest{}, fmt.Errorf("reading site manifest: %w", err)
	}
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return SiteManifest{}, fmt.Errorf("parsing site manifest %s: %w", path, err)
	}
	if manifest.Title == "" {
		manifest.Title = DefaultManifest().Title
	}
	return manifest, nil
}

// wantsPage reports whether the manifest enables the named page.
func (m SiteManifest) wantsPage(name string) bool {
	if len(m.Pages) == 0 {
		return true
	}
	for _, page := range m.Pages {
		if page == name {
			return true
		}
	}
	return false
}
