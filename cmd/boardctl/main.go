package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	board "github.com/goliatone/go-secboard/components/board"
)

type cli struct {
	Scaffold scaffoldCmd `cmd:"" help:"Add a widget template entry to a catalog manifest."`
	Validate validateCmd `cmd:"" help:"Validate a catalog manifest file."`
	Seed     seedCmd     `cmd:"" help:"Print the built-in seed state as JSON."`
}

type scaffoldCmd struct {
	Label        string `required:"" help:"Display label for the template (doubles as the widget title)."`
	ID           string `help:"Template id (defaults to the kebab-cased label)."`
	Group        string `required:"" help:"Category type tab the template appears under (CSPM, CWPP, Image, Ticket, ...)."`
	Widget       string `default:"donut" enum:"donut,bar,line,gauge,text" help:"Widget type created from the template."`
	DataPath     string `type:"path" help:"Optional path to a JSON file with the default chart payload."`
	ManifestPath string `required:"" type:"path" help:"Path to the catalog manifest YAML file to update."`
	Overwrite    bool   `help:"Replace an existing template entry with the same id."`
}

type validateCmd struct {
	ManifestPath string `arg:"" type:"path" help:"Path to the catalog manifest YAML file."`
}

type seedCmd struct{}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Catalog manifest utility for go-secboard template packs."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

func (cmd *scaffoldCmd) Run(_ context.Context) error {
	group := board.CategoryType(cmd.Group)
	if group == "" || group == board.CategoryGeneral {
		return fmt.Errorf("boardctl: group %q cannot host templates", cmd.Group)
	}
	id := cmd.ID
	if id == "" {
		id = strcase.ToKebab(cmd.Label)
	}
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("boardctl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}

	data, err := cmd.loadData()
	if err != nil {
		return err
	}
	entry := board.ManifestTemplate{
		ID:     id,
		Label:  cmd.Label,
		Widget: board.WidgetType(cmd.Widget),
		Data:   data,
	}

	if existing := findTemplate(doc, id); existing != nil {
		if !cmd.Overwrite {
			return fmt.Errorf("boardctl: manifest already defines template %s (use --overwrite to replace)", id)
		}
		removeTemplate(doc, id)
	}

	grp := findGroup(doc, group)
	if grp == nil {
		doc.Groups = append(doc.Groups, board.ManifestGroup{Type: group})
		grp = &doc.Groups[len(doc.Groups)-1]
	}
	grp.Templates = append(grp.Templates, entry)
	sort.Slice(grp.Templates, func(i, j int) bool {
		return grp.Templates[i].ID < grp.Templates[j].ID
	})

	if err := board.ValidateCatalogManifest(doc); err != nil {
		return err
	}
	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Added %s to %s under %s\n", id, manifestPath, group)
	return nil
}

func (cmd *scaffoldCmd) loadData() (*board.ChartData, error) {
	if cmd.DataPath == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(cmd.DataPath)
	if err != nil {
		return nil, fmt.Errorf("boardctl: read data file: %w", err)
	}
	var data board.ChartData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("boardctl: parse data JSON: %w", err)
	}
	return &data, nil
}

func (cmd *validateCmd) Run(_ context.Context) error {
	doc, err := board.ReadCatalogManifest(cmd.ManifestPath)
	if err != nil {
		return err
	}
	if err := board.ValidateCatalogManifest(doc); err != nil {
		return err
	}
	// Registration against a fresh catalog also catches duplicate ids and
	// collisions with the built-in templates.
	if err := board.NewCatalog().LoadManifestDocument(doc); err != nil {
		return err
	}
	total := 0
	for _, group := range doc.Groups {
		total += len(group.Templates)
	}
	fmt.Fprintf(os.Stdout, "✓ %s is valid (%d templates in %d groups)\n", cmd.ManifestPath, total, len(doc.Groups))
	return nil
}

func (cmd *seedCmd) Run(_ context.Context) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(board.SeedSnapshot())
}

func loadOrInitManifest(path string) (*board.CatalogManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &board.CatalogManifestDocument{
				Version: board.CatalogManifestVersion,
				Name:    manifestNameFromPath(path),
				Groups:  []board.ManifestGroup{},
				Source:  path,
			}, nil
		}
		return nil, fmt.Errorf("boardctl: stat manifest: %w", err)
	}
	return board.ReadCatalogManifest(path)
}

func manifestNameFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strcase.ToKebab(base)
}

func findGroup(doc *board.CatalogManifestDocument, t board.CategoryType) *board.ManifestGroup {
	for i := range doc.Groups {
		if doc.Groups[i].Type == t {
			return &doc.Groups[i]
		}
	}
	return nil
}

func findTemplate(doc *board.CatalogManifestDocument, id string) *board.ManifestTemplate {
	for gi := range doc.Groups {
		for ti := range doc.Groups[gi].Templates {
			if doc.Groups[gi].Templates[ti].ID == id {
				return &doc.Groups[gi].Templates[ti]
			}
		}
	}
	return nil
}

func removeTemplate(doc *board.CatalogManifestDocument, id string) {
	for gi := range doc.Groups {
		templates := doc.Groups[gi].Templates
		for ti := range templates {
			if templates[ti].ID == id {
				doc.Groups[gi].Templates = append(templates[:ti], templates[ti+1:]...)
				return
			}
		}
	}
}

func writeManifest(path string, doc *board.CatalogManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("boardctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	tmpDoc := *doc
	tmpDoc.Source = ""

	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("boardctl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(tmpDoc); err != nil {
		return fmt.Errorf("boardctl: write manifest: %w", err)
	}
	return nil
}
