// Package validation checks user-supplied anchor tables against the embedded
// JSON schema before they reach the generator.
package validation

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed anchors.schema.json
var anchorsSchemaJSON string

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// anchorsSchema is the compiled JSON Schema for anchor files.
var anchorsSchema = mustCompileSchema(anchorsSchemaJSON, "anchors.schema.json")

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// ParseAnchorsYAML decodes an anchor file into a generic document and
// validates it. The document is returned even when it has schema errors so
// callers can report every problem at once.
func ParseAnchorsYAML(data []byte) (doc map[string]any, errs []string, err error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("parsing anchors YAML: %w", err)
	}
	if raw == nil {
		return map[string]any{}, nil, nil
	}
	doc, ok := raw.(map[string]any)
	if !ok {
		return nil, []string{"/: anchors file must be a mapping"}, nil
	}
	return doc, ValidateAnchors(doc), nil
}

// ValidateAnchors validates a decoded anchor document against the schema.
func ValidateAnchors(doc any) []string {
	err := anchorsSchema.Validate(doc)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}
