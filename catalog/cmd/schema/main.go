// Command schema regenerates catalog/species.schema.json from the Go
// document types, keeping the validated contract in sync with the structs.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"wildmark/server/catalog"
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "catalog/species.schema.json", "path to write the JSON schema")
	flag.Parse()

	schema := buildSchema()

	if err := writeSchema(outPath, schema); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}
}

func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
	}
	schema := reflector.Reflect(new(catalog.FileDocument))
	schema.Title = "Wildmark Species Catalog"
	schema.Description = "Validates designer-authored entries in catalog/species.yaml"
	return schema
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(outPath, data, 0o644)
}
