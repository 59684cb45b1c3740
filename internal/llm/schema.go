package llm

import (
	"log"

	"github.com/xeipuuv/gojsonschema"
)

// resultSchema describes the shape the model is asked to produce. The
// contract tolerates incomplete responses, so validation is advisory:
// violations are logged for diagnosis, never surfaced to the caller.
const resultSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "tailoredResume": {"type": "string"},
    "coverLetter": {"type": "string"}
  },
  "required": ["tailoredResume", "coverLetter"]
}`

var resultSchemaLoader = gojsonschema.NewStringLoader(resultSchema)

// validateResultShape checks the model output against the result schema
// and logs any deviation.
func validateResultShape(content string) {
	result, err := gojsonschema.Validate(resultSchemaLoader, gojsonschema.NewStringLoader(content))
	if err != nil {
		log.Printf("[llm] result schema validation errored: %v", err)
		return
	}
	for _, violation := range result.Errors() {
		log.Printf("[llm] model output deviates from result schema: %s", violation)
	}
}
