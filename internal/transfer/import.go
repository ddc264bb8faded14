package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"notewell/internal/store"
)

// ErrNotArray is returned when the imported document is not a JSON array.
var ErrNotArray = errors.New("import document must be a JSON array of notes")

// FieldError describes one validation failure inside an imported record.
type FieldError struct {
	Index  int    // position of the record in the array
	Field  string // offending field, empty for whole-record problems
	Reason string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("record %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("record %d: field %q %s", e.Index, e.Field, e.Reason)
}

// ValidationError aggregates every failure found in an import document.
// Any failure rejects the whole document; no records are accepted partially.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return "invalid notes format: " + strings.Join(msgs, "; ")
}

// Import parses and validates a backup document. On success every record is
// returned as a draft plus the flag/appearance fields the add path does not
// normalize; the caller inserts them through the store's normal add
// operation, which re-parents them to the current workspace under fresh ids
// and timestamps.
func Import(data []byte) ([]Record, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, ErrNotArray
	}

	records := make([]Record, 0, len(raw))
	verr := &ValidationError{}
	for i, msg := range raw {
		rec, errs := validateRecord(i, msg)
		if len(errs) > 0 {
			verr.Fields = append(verr.Fields, errs...)
			continue
		}
		records = append(records, rec)
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return records, nil
}

// Record is a validated imported note.
type Record struct {
	ID         string
	Title      string
	Content    string
	Tags       []string
	CreatedAt  int64
	UpdatedAt  int64
	IsPinned   bool
	IsFavorite bool
	Color      string
	Folder     string
}

// Draft converts the record to a store draft for the normal add path.
func (r Record) Draft() store.Draft {
	return store.Draft{
		Title:   r.Title,
		Content: r.Content,
		Tags:    r.Tags,
		Color:   r.Color,
		Folder:  r.Folder,
	}
}

// validateRecord checks one array element against the import contract:
// an object whose id, title and content are strings, tags is an array of
// strings, and createdAt/updatedAt are numbers.
func validateRecord(index int, msg json.RawMessage) (Record, []FieldError) {
	var obj map[string]any
	if err := json.Unmarshal(msg, &obj); err != nil {
		return Record{}, []FieldError{{Index: index, Reason: "is not an object"}}
	}

	var errs []FieldError
	stringField := func(field string) string {
		v, ok := obj[field].(string)
		if !ok {
			errs = append(errs, FieldError{Index: index, Field: field, Reason: "must be a string"})
		}
		return v
	}
	numberField := func(field string) int64 {
		v, ok := obj[field].(float64)
		if !ok {
			errs = append(errs, FieldError{Index: index, Field: field, Reason: "must be a number"})
		}
		return int64(v)
	}

	rec := Record{
		ID:        stringField("id"),
		Title:     stringField("title"),
		Content:   stringField("content"),
		CreatedAt: numberField("createdAt"),
		UpdatedAt: numberField("updatedAt"),
	}

	tags, ok := obj["tags"].([]any)
	if !ok {
		errs = append(errs, FieldError{Index: index, Field: "tags", Reason: "must be an array of strings"})
	} else {
		rec.Tags = make([]string, 0, len(tags))
		for _, t := range tags {
			s, ok := t.(string)
			if !ok {
				errs = append(errs, FieldError{Index: index, Field: "tags", Reason: "must be an array of strings"})
				break
			}
			rec.Tags = append(rec.Tags, s)
		}
	}

	// Optional fields keep their zero value when absent.
	if v, ok := obj["isPinned"].(bool); ok {
		rec.IsPinned = v
	}
	if v, ok := obj["isFavorite"].(bool); ok {
		rec.IsFavorite = v
	}
	if v, ok := obj["color"].(string); ok {
		rec.Color = v
	}
	if v, ok := obj["folder"].(string); ok {
		rec.Folder = v
	}

	if len(errs) > 0 {
		return Record{}, errs
	}
	return rec, nil
}
