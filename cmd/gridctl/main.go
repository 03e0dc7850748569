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

	"github.com/fleetops/go-dashgrid/components/dashgrid"
)

type cli struct {
	Validate validateCmd `cmd:"" help:"Validate a widget catalog manifest."`
	Plan     planCmd     `cmd:"" help:"Simulate a reorder against a layout JSON file and print the reconciled result."`
	Scaffold scaffoldCmd `cmd:"" help:"Add a widget entry to a catalog manifest."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Catalog and layout tooling for go-dashgrid."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

type validateCmd struct {
	Manifest string `arg:"" type:"path" help:"Path to the manifest YAML/JSON file."`
}

func (cmd *validateCmd) Run(_ context.Context) error {
	doc, err := dashgrid.ReadManifest(cmd.Manifest)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ %s is valid (%d widgets, version %s)\n", cmd.Manifest, len(doc.Widgets), doc.Version)
	return nil
}

type planCmd struct {
	Layout        string   `required:"" type:"path" help:"Path to a JSON file holding the placement collection."`
	Order         []string `required:"" help:"Desired visible order of widget ids (repeat --order or comma-separate)."`
	IncludeHidden bool     `help:"Reorder the full collection, hidden widgets included (picker semantics)."`
	JSON          bool     `help:"Print the reconciled collection as JSON instead of a table."`
}

func (cmd *planCmd) Run(_ context.Context) error {
	data, err := os.ReadFile(cmd.Layout)
	if err != nil {
		return fmt.Errorf("gridctl: read layout file: %w", err)
	}
	var placements []dashgrid.WidgetPlacement
	if err := json.Unmarshal(data, &placements); err != nil {
		return fmt.Errorf("gridctl: parse layout JSON: %w", err)
	}

	result := dashgrid.Reconcile(placements, cmd.Order, dashgrid.ReconcileOptions{
		DropHidden: !cmd.IncludeHidden,
	})
	if len(result) != len(placements) {
		fmt.Fprintln(os.Stderr, "warning: order did not match the candidate pool; printing the pool unchanged")
	}

	if cmd.JSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}
	for _, p := range result {
		marker := " "
		if p.Deleted {
			marker = "x"
		}
		fmt.Fprintf(os.Stdout, "%3d  [%s]  %-40s scale=%d\n", p.Position, marker, p.WidgetID, p.Scale)
	}
	return nil
}

type scaffoldCmd struct {
	Code         string `required:"" help:"Fully-qualified widget code (e.g. rental.widget.branch_revenue)."`
	Name         string `help:"Display name (defaults to a title-cased form of the code's last segment)."`
	Description  string `help:"One-line description used in the manifest."`
	Category     string `default:"custom" help:"Widget category (agreements, reservations, charts, ...)."`
	ManifestPath string `required:"" type:"path" help:"Path to the manifest YAML file to update."`
	SchemaPath   string `type:"path" help:"Optional path to a JSON schema file for the widget settings."`
	DefaultScale int    `default:"6" help:"Default grid width (1-12)."`
	Removable    bool   `default:"true" negatable:"" help:"Whether users may hide this widget."`
	Overwrite    bool   `help:"Overwrite an existing manifest entry."`
}

func (cmd *scaffoldCmd) Run(_ context.Context) error {
	if !strings.Contains(cmd.Code, ".") {
		return fmt.Errorf("gridctl: widget code %s must contain at least one '.' segment", cmd.Code)
	}
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("gridctl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}
	if !cmd.Overwrite {
		for _, entry := range doc.Widgets {
			if entry.Code == cmd.Code {
				return fmt.Errorf("gridctl: manifest already defines widget %s (use --overwrite to replace)", cmd.Code)
			}
		}
	}

	schema, err := cmd.loadSchema()
	if err != nil {
		return err
	}
	name := cmd.Name
	if name == "" {
		name = deriveDisplayName(cmd.Code)
	}
	entry := dashgrid.CatalogEntry{
		Code:         cmd.Code,
		Name:         name,
		Description:  cmd.Description,
		Category:     cmd.Category,
		Removable:    cmd.Removable,
		DefaultScale: cmd.DefaultScale,
		Schema:       schema,
	}

	replaced := false
	for idx := range doc.Widgets {
		if doc.Widgets[idx].Code == cmd.Code {
			doc.Widgets[idx] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Widgets = append(doc.Widgets, entry)
	}
	sort.Slice(doc.Widgets, func(i, j int) bool {
		return doc.Widgets[i].Code < doc.Widgets[j].Code
	})

	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Added %s to %s\n", cmd.Code, manifestPath)
	return nil
}

func (cmd *scaffoldCmd) loadSchema() (map[string]any, error) {
	if cmd.SchemaPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(cmd.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("gridctl: read schema file: %w", err)
	}
	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("gridctl: parse schema JSON: %w", err)
	}
	return schema, nil
}

func loadOrInitManifest(path string) (*dashgrid.CatalogManifest, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &dashgrid.CatalogManifest{
				Version: dashgrid.ManifestVersion,
				Widgets: []dashgrid.CatalogEntry{},
				Source:  path,
			}, nil
		}
		return nil, fmt.Errorf("gridctl: stat manifest: %w", err)
	}
	return dashgrid.ReadManifest(path)
}

func writeManifest(path string, doc *dashgrid.CatalogManifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("gridctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	tmpDoc := *doc
	tmpDoc.Source = ""

	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("gridctl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(tmpDoc); err != nil {
		return fmt.Errorf("gridctl: write manifest: %w", err)
	}
	return nil
}

func deriveDisplayName(code string) string {
	parts := strings.Split(code, ".")
	slug := strings.TrimSpace(parts[len(parts)-1])
	if slug == "" {
		slug = code
	}
	return strcase.ToCase(slug, strcase.TitleCase, ' ')
}
