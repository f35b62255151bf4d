package client

import (
	"encoding/json"
	"fmt"
)

// decodeItems decodes collection responses that arrive either as a bare JSON
// array or wrapped in the usual {"items": [...]} envelope.
func decodeItems(body []byte, what string) ([]map[string]interface{}, error) {
	var items []map[string]interface{}

	if err := json.Unmarshal(body, &items); err == nil {
		return items, nil
	}

	var envelope struct {
		Items []map[string]interface{} `json:"items"`
	}

	err := json.Unmarshal(body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", what, err)
	}

	return envelope.Items, nil
}
