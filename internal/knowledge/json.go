package knowledge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// wrapperKeys are the object fields that may hold the record array.
var wrapperKeys = []string{"entries", "faq", "items", "questions"}

type jsonRecord struct {
	ID         flexibleID `json:"id"`
	Question   string     `json:"question"`
	Variations stringList `json:"variations"`
	Keywords   stringList `json:"keywords"`
	Answer     string     `json:"answer"`
	Category   string     `json:"category"`
}

// flexibleID accepts both "id": "a1" and "id": 17.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or a number")
	}
	*f = flexibleID(n.String())
	return nil
}

// stringList accepts a JSON array of strings or a single comma separated
// string.
type stringList []string

func (s *stringList) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*s = strings.Split(one, ",")
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return fmt.Errorf("expected a string or a list of strings")
	}
	*s = many
	return nil
}

// parseJSON splits the document into raw records first so that one record of
// the wrong shape is skipped without failing the rest.
func parseJSON(data []byte) ([]draft, error) {
	raws, err := jsonRecords(data)
	if err != nil {
		return nil, err
	}

	drafts := make([]draft, 0, len(raws))
	for i, raw := range raws {
		d := draft{position: i + 1}

		var rec jsonRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			d.err = fmt.Sprintf("malformed record: %v", err)
			drafts = append(drafts, d)
			continue
		}

		d.id = string(rec.ID)
		d.question = rec.Question
		d.variations = rec.Variations
		d.keywords = rec.Keywords
		d.answer = rec.Answer
		d.category = rec.Category
		drafts = append(drafts, d)
	}
	return drafts, nil
}

func jsonRecords(data []byte) ([]json.RawMessage, error) {
	if data[0] == '[' {
		var raws []json.RawMessage
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
		}
		return raws, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	for _, key := range wrapperKeys {
		body, ok := wrapper[key]
		if !ok {
			continue
		}
		var raws []json.RawMessage
		if err := json.Unmarshal(body, &raws); err != nil {
			return nil, fmt.Errorf("%w: %q is not an array: %w", ErrUnknownFormat, key, err)
		}
		return raws, nil
	}
	return nil, fmt.Errorf("%w: JSON object without any of %v", ErrUnknownFormat, wrapperKeys)
}
