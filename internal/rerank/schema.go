// internal/rerank/schema.go
package rerank

// judgmentSchema is the shape the external model must return. Anything that
// does not validate is treated as a failed call, never coerced.
var judgmentSchema = map[string]interface{}{
	"type": "array",
	"items": map[string]interface{}{
		"type":                 "object",
		"required":             []interface{}{"id", "score", "rationale"},
		"additionalProperties": true,
		"properties": map[string]interface{}{
			"id": map[string]interface{}{
				"type":      "string",
				"minLength": 1,
			},
			"score": map[string]interface{}{
				"type":    "number",
				"minimum": 0,
				"maximum": 1,
			},
			"rationale": map[string]interface{}{
				"type": "string",
			},
		},
	},
}
