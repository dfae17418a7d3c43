package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	dErrors "plantcare/pkg/domain-errors"
)

// maxPhotoBytes caps inline data-URI images.
const maxPhotoBytes = 5 << 20

// Photo is an image reference: either an inline data-URI image or a remote
// http(s) URL. Optional photos are modelled as *Photo; nil means "no image",
// and the empty string never crosses the wire.
type Photo string

// ParsePhoto validates a non-empty image reference.
func ParsePhoto(s string) (Photo, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return "", dErrors.New(dErrors.CodeInvalidInput, "photo cannot be empty")
	case len(s) > maxPhotoBytes:
		return "", dErrors.New(dErrors.CodeInvalidInput, "photo exceeds maximum size")
	case strings.HasPrefix(s, "data:image/"):
		return Photo(s), nil
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"):
		return Photo(s), nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "photo must be a data URI image or an http(s) URL")
}

// NormalizePhoto maps the tri-state wire value (absent, "", value) onto an
// optional reference: nil and blank collapse to nil.
func NormalizePhoto(s *string) (*Photo, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	p, err := ParsePhoto(*s)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (p Photo) String() string { return string(p) }

func (p *Photo) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("photo: %w", err)
	}
	parsed, err := ParsePhoto(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// PhotoValue converts an optional photo to a nullable SQL value.
func PhotoValue(p *Photo) driver.Value {
	if p == nil {
		return nil
	}
	return string(*p)
}

// PhotoFromNullable is the read-side counterpart of PhotoValue.
func PhotoFromNullable(s *string) *Photo {
	if s == nil || *s == "" {
		return nil
	}
	p := Photo(*s)
	return &p
}

// PhotoChange is the photo field of a partial update. An absent key leaves
// the photo unchanged; null or "" clears it; a value replaces it. Tag it
// `json:"photo,omitzero"` so an unset change is not sent.
type PhotoChange struct {
	Set   bool
	Value *string
}

// SetPhoto builds a change that replaces the photo, or clears it when p is nil.
func SetPhoto(p *Photo) PhotoChange {
	if p == nil {
		return PhotoChange{Set: true}
	}
	s := string(*p)
	return PhotoChange{Set: true, Value: &s}
}

func (c *PhotoChange) UnmarshalJSON(b []byte) error {
	c.Set = true
	if string(b) == "null" {
		c.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("photo: %w", err)
	}
	c.Value = &s
	return nil
}

func (c PhotoChange) MarshalJSON() ([]byte, error) {
	p, err := NormalizePhoto(c.Value)
	if err != nil || p == nil {
		return []byte("null"), err
	}
	return json.Marshal(string(*p))
}

func (c PhotoChange) Validate() error {
	if !c.Set {
		return nil
	}
	if _, err := NormalizePhoto(c.Value); err != nil {
		return dErrors.New(dErrors.CodeValidation, err.Error())
	}
	return nil
}

// ApplyTo returns the photo after the change. Call Validate first.
func (c PhotoChange) ApplyTo(current *Photo) *Photo {
	if !c.Set {
		return current
	}
	p, err := NormalizePhoto(c.Value)
	if err != nil {
		return current
	}
	return p
}
