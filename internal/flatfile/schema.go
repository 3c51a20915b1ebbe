package flatfile

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed tasks.schema.json
var taskSchemaJSON string

const taskSchemaURL = "todolist://tasks.schema.json"

// taskSchema is compiled once; the embedded document is static.
var taskSchema = jsonschema.MustCompileString(taskSchemaURL, taskSchemaJSON)

// validateDocument checks a decoded document against the task file schema
// and returns the deepest failing location, e.g. "/2/completed: expected
// boolean, but got string".
func validateDocument(doc any) error {
	err := taskSchema.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	leaf := firstLeaf(ve)
	loc := leaf.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Errorf("%s: %s", loc, strings.TrimSpace(leaf.Message))
}

// firstLeaf walks the first chain of causes down to a concrete failure.
func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}
