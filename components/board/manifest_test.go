package board

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCatalogManifest(t *testing.T) {
	const payload = `
version: "1"
name: runtime-pack
groups:
  - type: CSPM
    templates:
      - id: pack-drift
        label: Configuration Drift
        widget: donut
        data:
          donut:
            segments:
              - label: drifted
                value: 12
              - label: stable
                value: 88
            total: 100
      - id: pack-exposure
        label: Public Exposure
`
	doc, err := DecodeCatalogManifest(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, doc.Groups, 1)
	require.Len(t, doc.Groups[0].Templates, 2)

	drift := doc.Groups[0].Templates[0]
	assert.Equal(t, "pack-drift", drift.ID)
	assert.Equal(t, "Configuration Drift", drift.Label)
	assert.Equal(t, WidgetDonut, drift.Widget)
	require.NotNil(t, drift.Data)
	require.NotNil(t, drift.Data.Donut)
	assert.Equal(t, 100, drift.Data.Donut.Total)

	exposure := doc.Groups[0].Templates[1]
	assert.Empty(t, exposure.Widget)
	assert.Nil(t, exposure.Data)
}

func TestDecodeCatalogManifestDefaultsVersion(t *testing.T) {
	doc, err := DecodeCatalogManifest(strings.NewReader("groups: []\n"))
	require.NoError(t, err)
	assert.Equal(t, CatalogManifestVersion, doc.Version)
}

func TestDecodeCatalogManifestRejectsUnknownVersion(t *testing.T) {
	_, err := DecodeCatalogManifest(strings.NewReader("version: \"9\"\ngroups: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported manifest version")
}

func TestDecodeCatalogManifestRejectsUnknownFields(t *testing.T) {
	_, err := DecodeCatalogManifest(strings.NewReader("version: \"1\"\ngroupz: []\n"))
	require.Error(t, err)
}

func TestLoadManifestDocument(t *testing.T) {
	catalog := NewCatalog()
	doc := &CatalogManifestDocument{
		Version: CatalogManifestVersion,
		Name:    "runtime-pack",
		Groups: []ManifestGroup{
			{
				Type: CategoryType("Runtime"),
				Templates: []ManifestTemplate{
					{ID: "pack-syscalls", Label: "Syscall Anomalies", Widget: WidgetBar},
					{ID: "pack-processes", Label: "Process Tree"},
				},
			},
		},
	}
	require.NoError(t, catalog.LoadManifestDocument(doc))

	assert.Contains(t, catalog.Groups(), CategoryType("Runtime"))
	tpl, ok := catalog.Template("pack-syscalls")
	require.True(t, ok)
	assert.Equal(t, "Syscall Anomalies", tpl.Label)
	assert.Equal(t, WidgetBar, catalog.Default("pack-syscalls").Type)
	// No widget/data on the manifest entry means the donut fallback.
	assert.Equal(t, WidgetDonut, catalog.Default("pack-processes").Type)
}

func TestLoadManifestDocumentRejectsGeneralGroup(t *testing.T) {
	catalog := NewCatalog()
	doc := &CatalogManifestDocument{
		Version: CatalogManifestVersion,
		Groups: []ManifestGroup{
			{Type: CategoryGeneral, Templates: []ManifestTemplate{{ID: "x", Label: "X"}}},
		},
	}
	err := catalog.LoadManifestDocument(doc)
	require.Error(t, err)
}

func TestValidateCatalogManifestMissingLabel(t *testing.T) {
	doc := &CatalogManifestDocument{
		Version: CatalogManifestVersion,
		Groups: []ManifestGroup{
			{Type: CategoryCSPM, Templates: []ManifestTemplate{{ID: "no-label"}}},
		},
	}
	err := ValidateCatalogManifest(doc)
	require.Error(t, err)
}

func TestValidateCatalogManifestUnknownWidgetType(t *testing.T) {
	doc := &CatalogManifestDocument{
		Version: CatalogManifestVersion,
		Groups: []ManifestGroup{
			{Type: CategoryCSPM, Templates: []ManifestTemplate{
				{ID: "bad", Label: "Bad", Widget: WidgetType("hologram")},
			}},
		},
	}
	err := ValidateCatalogManifest(doc)
	require.Error(t, err)
}

func TestManifestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pack.yaml")
	doc := &CatalogManifestDocument{
		Name: "disk-pack",
		Groups: []ManifestGroup{
			{
				Type: CategoryType("Runtime"),
				Templates: []ManifestTemplate{
					{ID: "disk-usage", Label: "Disk Usage", Widget: WidgetGauge,
						Data: &ChartData{Gauge: &GaugeData{Critical: 1, High: 3, Total: 4}}},
				},
			},
		},
	}
	require.NoError(t, WriteCatalogManifest(path, doc))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "disk-usage")

	catalog := NewCatalog()
	loaded, err := catalog.LoadManifestFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, loaded.Source)
	assert.Equal(t, CatalogManifestVersion, loaded.Version)

	def := catalog.Default("disk-usage")
	assert.Equal(t, WidgetGauge, def.Type)
	require.NotNil(t, def.Data)
	require.NotNil(t, def.Data.Gauge)
	assert.Equal(t, 4, def.Data.Gauge.Total)
}
