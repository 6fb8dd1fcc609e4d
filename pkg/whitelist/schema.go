package whitelist

import (
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/matzehuels/commitpin/pkg/errors"
)

const schemaURL = "commitpin://whitelist.schema.json"

//go:embed schema.json
var schemaSource string

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString(schemaURL, schemaSource)
})

// Validate checks a whitelist document (JSON bytes) against the embedded
// schema. Violations are reported as configuration errors.
func Validate(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(errors.ErrCodeConfiguration, err, "whitelist is not valid JSON")
	}
	return validateDocument(doc)
}

func validateDocument(doc any) error {
	schema, err := compiledSchema()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "compile whitelist schema")
	}
	if err := schema.Validate(doc); err != nil {
		return errors.Wrap(errors.ErrCodeConfiguration, err, "whitelist does not match schema")
	}
	return nil
}
