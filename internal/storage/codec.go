package storage

import (
	"encoding/json"
	"fmt"
)

// Encode converts a model into a Doc using its json tags.
func Encode(v any) (Doc, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to encode document: %w", err)
	}
	var doc Doc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("storage: failed to encode document: %w", err)
	}
	return doc, nil
}

// Decode fills v from doc using v's json tags.
func Decode(doc Doc, v any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("storage: failed to decode document: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("storage: failed to decode document: %w", err)
	}
	return nil
}

// Marshal serializes a document for a backend. DeleteField markers are dropped.
func Marshal(doc Doc) ([]byte, error) {
	raw, err := json.Marshal(Clean(doc))
	if err != nil {
		return nil, fmt.Errorf("storage: failed to marshal document: %w", err)
	}
	return raw, nil
}

// Unmarshal parses a document stored by a backend.
func Unmarshal(raw []byte) (Doc, error) {
	var doc Doc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("storage: failed to unmarshal document: %w", err)
	}
	if doc == nil {
		doc = Doc{}
	}
	return doc, nil
}
