package secrets

import (
	"strings"
	"unicode/utf8"
)

// DefaultDelimiter separates the identifier from the key in a reference.
const DefaultDelimiter = ","

// Reference is a parsed secret reference: an identifier and an optional key
// inside the secret's JSON payload.
type Reference struct {
	ID  string
	Key string
}

// HasKey reports whether the reference selects a key.
func (r Reference) HasKey() bool {
	return r.Key != ""
}

// Format joins the reference back together with delimiter.
func (r Reference) Format(delimiter string) string {
	if !r.HasKey() {
		return r.ID
	}
	return r.ID + delimiter + r.Key
}

// ParseReference splits s on the first occurrence of delimiter.
//
//	"db"          -> {ID: "db"}
//	"db,password" -> {ID: "db", Key: "password"}
//
// The identifier must be non-empty, and when the delimiter is present the key
// must be non-empty too.
func ParseReference(s, delimiter string) (Reference, error) {
	if utf8.RuneCountInString(delimiter) != 1 {
		return Reference{}, NewValidationError("delimiter", delimiter, "delimiter must be exactly one character")
	}

	id, key, found := strings.Cut(s, delimiter)
	if id == "" {
		return Reference{}, NewValidationError("identifier", s, "identifier cannot be empty")
	}
	if found && key == "" {
		return Reference{}, NewValidationError("key", s, "key cannot be empty after delimiter")
	}

	return Reference{ID: id, Key: key}, nil
}
