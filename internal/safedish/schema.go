package safedish

import "encoding/json"

// recommendationsSchema validates the collaborator's ranking reply.
var recommendationsSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"recommendations": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"dishName": {"type": "string"},
					"safetyRank": {"type": "integer", "minimum": 1},
					"warnings": {"type": "array", "items": {"type": "string"}},
					"requiredModifications": {"type": "array", "items": {"type": "string"}}
				},
				"required": ["dishName", "safetyRank", "warnings", "requiredModifications"],
				"additionalProperties": false
			}
		}
	},
	"required": ["recommendations"],
	"additionalProperties": false
}`)
