package source

import (
	"bytes"
	"encoding/json"
	"io"
	"log"

	"bazaar-engine/internal/domain"
)

// decodeItems accepts the response shapes origins actually produce: a
// bare array, or an object with the array under "data" or under the
// source-specific plural key. A well-formed body with no recognizable
// array is a data-shape mismatch and decodes to an empty set rather than
// failing the source.
func decodeItems(r io.Reader, itemsKey string) ([]domain.Record, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []domain.Record{}, nil
	}

	if body[0] == '[' {
		var items []domain.Record
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}

	for _, key := range []string{"data", itemsKey} {
		if key == "" {
			continue
		}
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		var items []domain.Record
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	log.Printf("[decode] no item array under %q or \"data\"; treating as empty", itemsKey)
	return []domain.Record{}, nil
}
