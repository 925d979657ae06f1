package document

import (
	"encoding/json"
	"fmt"

	domdoc "github.com/kailas-cloud/faqdex/internal/domain/document"
)

// jsonDoc is the on-disk / in-Redis shape of a single FAQ document.
type jsonDoc struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

// Parse decodes a JSON array of documents into a validated set.
func Parse(data []byte) (domdoc.Set, error) {
	var raw []jsonDoc
	if err := json.Unmarshal(data, &raw); err != nil {
		return domdoc.Set{}, fmt.Errorf("decode documents: %w", err)
	}

	docs := make([]domdoc.Document, 0, len(raw))
	for i, r := range raw {
		d, err := domdoc.New(r.ID, r.Title, r.Content, r.Tags)
		if err != nil {
			return domdoc.Set{}, fmt.Errorf("document #%d: %w", i, err)
		}
		docs = append(docs, d)
	}

	set, err := domdoc.NewSet(docs)
	if err != nil {
		return domdoc.Set{}, fmt.Errorf("build document set: %w", err)
	}
	return set, nil
}

// Marshal encodes a set as an indented JSON array accepted by Parse.
func Marshal(set domdoc.Set) ([]byte, error) {
	raw := make([]jsonDoc, 0, set.Len())
	for _, d := range set.All() {
		raw = append(raw, jsonDoc{
			ID:      d.ID(),
			Title:   d.Title(),
			Content: d.Content(),
			Tags:    d.Tags(),
		})
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode documents: %w", err)
	}
	return data, nil
}
