package board

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// catalogManifestSchema validates the structure of catalog manifests: ids
// and labels present, widget types limited to the renderable set, payload
// variants shaped correctly. Runtime chart data is never validated beyond
// this; only manifest documents pass through here.
var catalogManifestSchema = map[string]any{
	"type":     "object",
	"required": []string{"version", "groups"},
	"properties": map[string]any{
		"version": map[string]any{"type": "string"},
		"name":    map[string]any{"type": "string"},
		"groups": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []string{"type", "templates"},
				"properties": map[string]any{
					"type": map[string]any{
						"type":      "string",
						"minLength": 1,
						"not":       map[string]any{"const": "General"},
					},
					"templates": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []string{"id", "label"},
							"properties": map[string]any{
								"id":    map[string]any{"type": "string", "minLength": 1},
								"label": map[string]any{"type": "string", "minLength": 1},
								"widget": map[string]any{
									"type": "string",
									"enum": []string{"donut", "bar", "line", "gauge", "text"},
								},
								"data": map[string]any{
									"type": "object",
									"properties": map[string]any{
										"donut": map[string]any{
											"type":     "object",
											"required": []string{"segments", "total"},
											"properties": map[string]any{
												"segments": map[string]any{
													"type": "array",
													"items": map[string]any{
														"type":     "object",
														"required": []string{"label", "value"},
														"properties": map[string]any{
															"label": map[string]any{"type": "string"},
															"value": map[string]any{"type": "integer"},
														},
													},
												},
												"total": map[string]any{"type": "integer"},
											},
										},
										"gauge": map[string]any{
											"type":     "object",
											"required": []string{"total"},
											"properties": map[string]any{
												"critical":        map[string]any{"type": "integer"},
												"high":            map[string]any{"type": "integer"},
												"medium":          map[string]any{"type": "integer"},
												"low":             map[string]any{"type": "integer"},
												"total":           map[string]any{"type": "integer"},
												"vulnerabilities": map[string]any{"type": "boolean"},
												"images":          map[string]any{"type": "boolean"},
											},
										},
									},
									"additionalProperties": false,
								},
							},
							"additionalProperties": false,
						},
					},
				},
				"additionalProperties": false,
			},
		},
	},
	"additionalProperties": false,
}

var (
	manifestSchemaOnce sync.Once
	manifestSchema     *jsonschema.Schema
	manifestSchemaErr  error
)

func compiledManifestSchema() (*jsonschema.Schema, error) {
	manifestSchemaOnce.Do(func() {
		data, err := json.Marshal(catalogManifestSchema)
		if err != nil {
			manifestSchemaErr = fmt.Errorf("board: marshal manifest schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		const name = "catalog-manifest.json"
		if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
			manifestSchemaErr = fmt.Errorf("board: load manifest schema: %w", err)
			return
		}
		manifestSchema, manifestSchemaErr = compiler.Compile(name)
	})
	return manifestSchema, manifestSchemaErr
}

// ValidateCatalogManifest ensures a decoded manifest document satisfies
// the catalog manifest schema.
func ValidateCatalogManifest(doc *CatalogManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("board: manifest document is nil")
	}
	schema, err := compiledManifestSchema()
	if err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("board: marshal manifest for validation: %w", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("board: normalize manifest for validation: %w", err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("board: manifest %s failed validation: %w", doc.Source, err)
	}
	return nil
}
