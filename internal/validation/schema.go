// Package validation checks .fixcheck.yaml documents against an embedded JSON Schema.
package validation

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

const schemaName = "fixcheck.schema.json"

//go:embed fixcheck.schema.json
var configSchemaJSON string

var (
	printer      = message.NewPrinter(language.English)
	configSchema = mustCompileSchema()
)

func mustCompileSchema() *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(configSchemaJSON))
	if err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", schemaName, err))
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaName, doc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", schemaName, err))
	}
	sch, err := c.Compile(schemaName)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", schemaName, err))
	}
	return sch
}

// ValidateConfigFile validates the config file at path. A read failure is
// returned as err; schema violations are returned as messages.
func ValidateConfigFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return ValidateConfigBytes(data), nil
}

// ValidateConfigBytes validates raw YAML against the config schema and
// returns one "/location: message" line per violation, sorted.
func ValidateConfigBytes(data []byte) []string {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return []string{fmt.Sprintf("YAML parse error: %v", err)}
	}
	// Empty means all defaults.
	if doc == nil {
		return nil
	}

	err := configSchema.Validate(toInstance(doc))
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}

	var msgs []string
	for _, leaf := range leafErrors(ve) {
		msgs = append(msgs, fmt.Sprintf("/%s: %s",
			strings.Join(leaf.InstanceLocation, "/"),
			leaf.ErrorKind.LocalizedString(printer)))
	}
	slices.Sort(msgs)
	return slices.Compact(msgs)
}

// leafErrors flattens the cause tree to the errors that name a concrete violation.
func leafErrors(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var out []*jsonschema.ValidationError
	for _, c := range ve.Causes {
		out = append(out, leafErrors(c)...)
	}
	return out
}

// toInstance turns a yaml.v3 document into the map[string]any / []any tree
// the validator walks. Non-string keys, which YAML allows, are stringified.
func toInstance(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = toInstance(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[fmt.Sprint(k)] = toInstance(e)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = toInstance(e)
		}
		return out
	default:
		return val
	}
}
