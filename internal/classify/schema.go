package classify

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// catalogSchema is the shape the classification oracle is asked for: a JSON
// object mapping component-type labels to objects of descriptive fields.
// Attribute values are left unconstrained; non-string scalars are coerced
// during decoding.
const catalogSchema = `{
  "type": "object",
  "additionalProperties": {
    "type": "object"
  }
}`

// validateCatalogJSON checks the oracle response against catalogSchema.
// It returns an error both for documents that are not JSON at all and for
// valid JSON whose shape cannot be used as a catalog.
func validateCatalogJSON(jsonText string) error {
	schemaLoader := gojsonschema.NewStringLoader(catalogSchema)
	documentLoader := gojsonschema.NewStringLoader(jsonText)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}

	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return fmt.Errorf("response does not match catalog shape: %s", strings.Join(msgs, "; "))
	}

	return nil
}
