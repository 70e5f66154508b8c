package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Parse decodes a record from JSON produced by the workflow store. Unknown
// fields are rejected so that schema drift between the store and this program
// surfaces early instead of silently dropping data.
func Parse(data []byte) (*ReportRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var rec ReportRecord
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("unable to decode record: %w", err)
	}
	if len(rec.ID) == 0 {
		return nil, fmt.Errorf("record has no id")
	}
	return &rec, nil
}

// Load reads and decodes a record from file.
func Load(path string) (*ReportRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read record from %q: %w", path, err)
	}
	return Parse(data)
}
