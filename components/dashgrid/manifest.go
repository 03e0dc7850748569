package dashgrid

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// CatalogManifest models a YAML/JSON manifest declaring catalog entries.
type CatalogManifest struct {
	Version string         `json:"version" yaml:"version"`
	Name    string         `json:"name,omitempty" yaml:"name,omitempty"`
	Widgets []CatalogEntry `json:"widgets" yaml:"widgets"`
	Source  string         `json:"-" yaml:"-"`
}

// LoadManifestFile reads a manifest from disk and registers its entries.
func (c *Catalog) LoadManifestFile(path string) (*CatalogManifest, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	if err := c.LoadManifest(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadManifest registers entries from a decoded manifest.
func (c *Catalog) LoadManifest(doc *CatalogManifest) error {
	if doc == nil {
		return fmt.Errorf("dashgrid: manifest document is nil")
	}
	for _, entry := range doc.Widgets {
		if err := c.Register(entry); err != nil {
			return fmt.Errorf("dashgrid: register widget %s from %s: %w", entry.Code, doc.Source, err)
		}
	}
	return nil
}

// ReadManifest loads a manifest file from disk without registering it.
func ReadManifest(path string) (*CatalogManifest, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashgrid: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("dashgrid: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*CatalogManifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc CatalogManifest
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("dashgrid: manifest is empty")
		}
		return nil, fmt.Errorf("dashgrid: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the manifest satisfies required fields.
func (doc *CatalogManifest) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("dashgrid: unsupported manifest version %q", doc.Version)
	}
	seen := make(map[string]struct{}, len(doc.Widgets))
	for idx, entry := range doc.Widgets {
		if entry.Code == "" {
			return fmt.Errorf("dashgrid: manifest widget at index %d is missing code", idx)
		}
		if entry.Name == "" {
			return fmt.Errorf("dashgrid: manifest widget %s missing name", entry.Code)
		}
		if entry.DefaultScale < 0 || entry.DefaultScale > GridColumns {
			return fmt.Errorf("dashgrid: manifest widget %s default_scale out of range", entry.Code)
		}
		if _, exists := seen[entry.Code]; exists {
			return fmt.Errorf("dashgrid: manifest duplicates widget code %s", entry.Code)
		}
		seen[entry.Code] = struct{}{}
	}
	return nil
}

func (doc *CatalogManifest) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
}
