package prefs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "snaplist://task_list.schema.json"

// taskListSchema describes the stored document. Unknown fields are tolerated.
const taskListSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": ["array", "null"],
  "items": {
    "type": "object",
    "required": ["task"],
    "properties": {
      "task": {"type": "string"},
      "imagePath": {"type": ["string", "null"]}
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString(schemaURL, taskListSchema)

// validate checks data against the task list schema.
func validate(data []byte) error {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("invalid json: trailing data")
	}

	if err := compiledSchema.Validate(doc); err != nil {
		return schemaError(err)
	}
	return nil
}

// schemaError flattens a jsonschema validation tree into one message.
func schemaError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}

	var msgs []string
	var collect func(e *jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := strings.TrimPrefix(e.InstanceLocation, "/")
			if loc == "" {
				loc = "(root)"
			}
			msgs = append(msgs, loc+": "+e.Message)
			return
		}
		for _, c := range e.Causes {
			collect(c)
		}
	}
	collect(ve)

	return fmt.Errorf("schema violation: %s", strings.Join(msgs, "; "))
}
