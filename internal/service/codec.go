package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/fav-sync/internal/validators"
	"github.com/MKhiriev/fav-sync/models"
)

// Codec converts favorites lists to and from the JSON form every namespace
// stores them in. Only a JSON array of favorites that all carry a url is
// accepted; anything else is a decode error.
type Codec struct {
	validator validators.Validator
}

func NewCodec(validator validators.Validator) *Codec {
	return &Codec{validator: validator}
}

// Decode parses raw. Absent, null and non-list payloads fail with [ErrDecode].
func (c *Codec) Decode(ctx context.Context, raw []byte) (models.Favorites, error) {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0:
		return nil, fmt.Errorf("%w: payload is absent", ErrDecode)
	case bytes.Equal(trimmed, []byte("null")):
		return nil, fmt.Errorf("%w: payload is null", ErrDecode)
	case trimmed[0] != '[':
		return nil, fmt.Errorf("%w: payload is not a list", ErrDecode)
	}

	var favorites models.Favorites
	if err := json.Unmarshal(trimmed, &favorites); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err := c.validator.Validate(ctx, favorites); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if favorites == nil {
		favorites = models.Favorites{}
	}
	return favorites, nil
}

// DecodeString is Decode for page namespace values.
func (c *Codec) DecodeString(ctx context.Context, value string) (models.Favorites, error) {
	return c.Decode(ctx, []byte(value))
}

// Encode serializes favorites. A nil list is encoded as an empty list.
func (c *Codec) Encode(favorites models.Favorites) (json.RawMessage, error) {
	if favorites == nil {
		favorites = models.Favorites{}
	}
	raw, err := json.Marshal(favorites)
	if err != nil {
		return nil, fmt.Errorf("encode favorites: %w", err)
	}
	return raw, nil
}
