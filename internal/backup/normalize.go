// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

package backup

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// looksLikeStoreID reports whether s has the shape of a native store id:
// exactly 24 lowercase-or-uppercase hex characters.
func looksLikeStoreID(s string) bool {
	if len(s) != 24 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// materializeID turns a payload id string into the value stored under _id.
// Native-shaped ids become real ObjectIDs so a restored document is
// indistinguishable from the original; anything else passes through
// unchanged as a string key.
func materializeID(s string) interface{} {
	if looksLikeStoreID(s) {
		if oid, err := primitive.ObjectIDFromHex(s); err == nil {
			return oid
		}
	}
	return s
}

// hexOrEmpty renders a store id for export. Zero ids are omitted from the
// payload entirely via omitempty.
func hexOrEmpty(oid primitive.ObjectID) string {
	if oid.IsZero() {
		return ""
	}
	return oid.Hex()
}

// createdAt formats accepted from payloads. Exports write RFC 3339; older
// payloads may carry a bare date.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

func parseCreatedAt(s string) (time.Time, error) {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized createdAt %q", s)
}

// wireTime decodes payload createdAt values with the lenient layouts above.
type wireTime struct {
	time.Time
}

func (t *wireTime) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("createdAt must be a string: %w", err)
	}
	parsed, err := parseCreatedAt(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
