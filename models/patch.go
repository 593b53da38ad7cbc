package models

import (
	"encoding/json"
	"errors"
	"sort"

	"go.mongodb.org/mongo-driver/bson"

	"recipebox/apperr"
	"recipebox/validation"
)

type FieldKind int

const (
	KindString FieldKind = iota
	KindInt
	KindBool
	KindStringList
)

func (k FieldKind) String() string {
	switch k {
	case KindInt:
		return "an integer"
	case KindBool:
		return "a boolean"
	case KindStringList:
		return "a list of strings"
	default:
		return "a string"
	}
}

// Field describes one editable document field: its JSON type and an
// optional validator rule applied to the decoded value.
type Field struct {
	Kind FieldKind
	Rule string
}

// Schema is an allow-list of editable fields keyed by JSON/bson name.
type Schema map[string]Field

// Fields returns the allowed names in sorted order.
func (s Schema) Fields() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply converts a raw request body into a $set document. Keys outside
// the schema and values of the wrong type are reported together as one
// validation error; an empty body is rejected.
func (s Schema) Apply(body map[string]json.RawMessage) (bson.M, error) {
	if len(body) == 0 {
		return nil, apperr.Validation("No fields to update.", map[string]any{"allowed": s.Fields()})
	}

	set := bson.M{}
	problems := map[string]string{}
	for key, raw := range body {
		field, ok := s[key]
		if !ok {
			problems[key] = "cannot be edited"
			continue
		}
		value, err := decodeField(field.Kind, raw)
		if err != nil {
			problems[key] = "must be " + field.Kind.String()
			continue
		}
		if field.Rule != "" {
			if err := validation.Var(key, value, field.Rule); err != nil {
				problems[key] = reason(err, key)
				continue
			}
		}
		set[key] = value
	}

	if len(problems) > 0 {
		return nil, apperr.Validation("Bad request.", problems)
	}
	return set, nil
}

func decodeField(kind FieldKind, raw json.RawMessage) (any, error) {
	switch kind {
	case KindInt:
		var v int
		err := json.Unmarshal(raw, &v)
		return v, err
	case KindBool:
		var v bool
		err := json.Unmarshal(raw, &v)
		return v, err
	case KindStringList:
		var v []string
		err := json.Unmarshal(raw, &v)
		return v, err
	default:
		var v string
		err := json.Unmarshal(raw, &v)
		return v, err
	}
}

func reason(err error, key string) string {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		if details, ok := appErr.Details.(map[string]string); ok && details[key] != "" {
			return details[key]
		}
	}
	return "is invalid"
}
