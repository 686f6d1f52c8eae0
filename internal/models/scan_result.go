package models

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// ConditionProbability is one entry of a classification result.
type ConditionProbability struct {
	Condition   string
	Probability float64
}

// Probabilities keeps the per-condition results in the order the server sent them.
type Probabilities []ConditionProbability

// UnmarshalJSON walks the object token by token; decoding into a map would
// lose the key order that risk evaluation depends on. A repeated key keeps
// its first position and its last value, null included.
func (p *Probabilities) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*p = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("results: expected object, got %v", tok)
	}

	type entry struct {
		condition   string
		probability *float64
	}
	var entries []entry
	index := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("results: unexpected key %v", keyTok)
		}

		var value *float64
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("results[%s]: %w", key, err)
		}
		if i, seen := index[key]; seen {
			entries[i].probability = value
			continue
		}
		index[key] = len(entries)
		entries = append(entries, entry{condition: key, probability: value})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	out := make(Probabilities, 0, len(entries))
	for _, e := range entries {
		if e.probability == nil {
			continue
		}
		out = append(out, ConditionProbability{Condition: e.condition, Probability: *e.probability})
	}
	*p = out
	return nil
}

// ScanResult is the most recent classification returned by the scan API.
type ScanResult struct {
	OverallSkinHealth string        `json:"overallSkinHealth"`
	Results           Probabilities `json:"results"`
	Timestamp         string        `json:"timestamp"`
	UserId            string        `json:"userId,omitempty"`
}

// Identity is the server-issued token that identifies this result for alert dedup.
func (r *ScanResult) Identity() string {
	return r.Timestamp
}
