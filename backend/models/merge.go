package models

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// MergeSections takes the full replacement section list submitted by a course
// owner and produces the document to persist. A section or chapter that echoes
// back a non-empty identifier keeps it, so existing learner progress stays
// attached to it; one without an identifier is new and gets a fresh uuid.
// Anything omitted from the input is gone — this is a destructive replace,
// not a patch. Input order is preserved as display order.
func MergeSections(incoming []Section) []Section {
	merged := make([]Section, 0, len(incoming))
	for _, section := range incoming {
		if section.SectionID == "" {
			section.SectionID = uuid.NewString()
		}

		chapters := make([]Chapter, 0, len(section.Chapters))
		for _, chapter := range section.Chapters {
			if chapter.ChapterID == "" {
				chapter.ChapterID = uuid.NewString()
			}
			chapters = append(chapters, chapter)
		}
		section.Chapters = chapters

		merged = append(merged, section)
	}
	return merged
}

// DecodeSectionsPayload normalizes the sections field of a course update.
// Depending on transport the client sends either a JSON array or a
// JSON-encoded string containing one (multipart forms do the latter), and the
// ambiguity must not leak past this boundary.
func DecodeSectionsPayload(raw json.RawMessage) ([]Section, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, errors.New("malformed sections payload")
		}
		raw = json.RawMessage(encoded)
	}

	var sections []Section
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, errors.New("malformed sections payload")
	}
	return sections, nil
}
