// internal/server/schema.go
package server

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"conference-outreach/internal/common/errors"
)

// approvalUpdateSchema constrains the review endpoint payload. Status
// is a closed enum; feedback is free text.
var approvalUpdateSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"event_name", "participant_name", "status"},
	"properties": map[string]interface{}{
		"event_name": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
		},
		"participant_name": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
		},
		"status": map[string]interface{}{
			"type": "string",
			"enum": []interface{}{"Pending", "Approved", "Needs Edits"},
		},
		"feedback": map[string]interface{}{
			"type": "string",
		},
	},
	"additionalProperties": false,
}

// workflowStartSchema constrains the run-start payload. Either a
// participant list or a scrape URL must carry the roster.
var workflowStartSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"event_name", "user"},
	"properties": map[string]interface{}{
		"event_name": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
		},
		"scrape_url": map[string]interface{}{
			"type": "string",
		},
		"participants": map[string]interface{}{
			"type": "array",
		},
		"credentials": map[string]interface{}{
			"type": "object",
		},
		"user": map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"user_name", "user_company_name"},
		},
	},
}

func validateSchema(schema map[string]interface{}, payload map[string]interface{}) error {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(payload))
	if err != nil {
		return errors.NewValidationError(err.Error())
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return errors.NewValidationError(fmt.Sprintf("payload validation failed: %v", errs))
	}
	return nil
}
