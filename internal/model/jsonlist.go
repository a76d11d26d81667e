package model

import "encoding/json"

// StringList is a variable-length list persisted as a JSON text column.
// The access layer treats the stored blob as opaque; decoding happens at
// the model boundary only.
type StringList []string

// EncodeList serializes a list for storage. A nil list encodes as NULL
// rather than "null" so empty columns stay empty.
func EncodeList(items []string) *string {
	if items == nil {
		return nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}

// DecodeList parses a stored list column. Malformed or empty blobs
// decode to nil, matching the degrade-to-empty policy of the reads.
func DecodeList(raw *string) StringList {
	if raw == nil || *raw == "" {
		return nil
	}
	var items StringList
	if err := json.Unmarshal([]byte(*raw), &items); err != nil {
		return nil
	}
	return items
}
