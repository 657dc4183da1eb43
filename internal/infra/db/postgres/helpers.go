package postgres

import (
	"encoding/json"
	"log"
)

// toJSON marshals v for a JSON text column; a marshal failure degrades to an
// empty object since the columns require valid JSON.
func toJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("postgres: could not marshal column value: %v", err)
		return "{}"
	}
	return string(b)
}

// fromJSON unmarshals a JSON text column into out; failures leave out zeroed.
func fromJSON(raw string, out any) {
	if raw == "" {
		return
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Printf("postgres: could not unmarshal column value: %v", err)
	}
}
