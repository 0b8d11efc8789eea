package board

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	catalogManifestVersionV1 = "1"
	// CatalogManifestVersion exposes the current manifest format version
	// for tooling.
	CatalogManifestVersion = catalogManifestVersionV1
)

// CatalogManifestDocument models a YAML/JSON manifest describing template
// packs that extend the built-in catalog.
type CatalogManifestDocument struct {
	Version string          `json:"version" yaml:"version"`
	Name    string          `json:"name,omitempty" yaml:"name,omitempty"`
	Groups  []ManifestGroup `json:"groups" yaml:"groups"`
	Source  string          `json:"-" yaml:"-"`
}

// ManifestGroup collects templates under one category type tab.
type ManifestGroup struct {
	Type      CategoryType       `json:"type" yaml:"type"`
	Templates []ManifestTemplate `json:"templates" yaml:"templates"`
}

// ManifestTemplate describes a single selectable template. Widget and Data
// configure the creation-time default; both may be omitted for the plain
// donut fallback.
type ManifestTemplate struct {
	ID     string     `json:"id" yaml:"id"`
	Label  string     `json:"label" yaml:"label"`
	Widget WidgetType `json:"widget,omitempty" yaml:"widget,omitempty"`
	Data   *ChartData `json:"data,omitempty" yaml:"data,omitempty"`
}

// LoadManifestFile reads a manifest from disk, registers it against the
// catalog, and returns the document.
func (c *Catalog) LoadManifestFile(path string) (*CatalogManifestDocument, error) {
	doc, err := ReadCatalogManifest(path)
	if err != nil {
		return nil, err
	}
	if err := c.LoadManifestDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadManifestDocument registers every template from a decoded manifest.
func (c *Catalog) LoadManifestDocument(doc *CatalogManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("board: manifest document is nil")
	}
	if err := ValidateCatalogManifest(doc); err != nil {
		return err
	}
	for _, group := range doc.Groups {
		for _, entry := range group.Templates {
			var def *TemplateDefault
			if entry.Widget != "" || entry.Data != nil {
				widgetType := entry.Widget
				if widgetType == "" {
					widgetType = WidgetDonut
				}
				def = &TemplateDefault{Type: widgetType, Data: entry.Data}
			}
			if err := c.Register(group.Type, Template{ID: entry.ID, Label: entry.Label}, def); err != nil {
				return fmt.Errorf("board: register template %s from %s: %w", entry.ID, doc.Source, err)
			}
		}
	}
	return nil
}

// ReadCatalogManifest loads a manifest file from disk without registering
// it.
func ReadCatalogManifest(path string) (*CatalogManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("board: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeCatalogManifest(f)
	if err != nil {
		return nil, fmt.Errorf("board: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeCatalogManifest reads a manifest from any reader. Unknown fields
// are rejected so typos surface at load time.
func DecodeCatalogManifest(r io.Reader) (*CatalogManifestDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc CatalogManifestDocument
	if err := decoder.Decode(&doc); err != nil {
		return nil, err
	}
	if doc.Version == "" {
		doc.Version = catalogManifestVersionV1
	}
	if doc.Version != catalogManifestVersionV1 {
		return nil, fmt.Errorf("board: unsupported manifest version %q", doc.Version)
	}
	return &doc, nil
}

// WriteCatalogManifest marshals the document back to disk as YAML.
func WriteCatalogManifest(path string, doc *CatalogManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("board: manifest document is nil")
	}
	if doc.Version == "" {
		doc.Version = catalogManifestVersionV1
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("board: marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("board: write manifest %s: %w", path, err)
	}
	return nil
}
