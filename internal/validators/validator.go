package validators

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/fav-sync/models"
)

type structValidator struct {
	validate *validator.Validate
}

// NewValidator returns a [Validator] driven by the `validate` struct tags of
// the models package.
func NewValidator() Validator {
	return &structValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *structValidator) Validate(ctx context.Context, value any, fields ...string) error {
	switch val := value.(type) {
	case models.Favorites:
		for i, item := range val {
			if err := v.check(ctx, item, fields); err != nil {
				return fmt.Errorf("%w: item %d: %w", ErrInvalidFavorite, i, err)
			}
		}
		return nil
	case models.Favorite, *models.Favorite, models.StarRequest, *models.StarRequest:
		if err := v.check(ctx, val, fields); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidFavorite, err)
		}
		return nil
	case models.OpenPageRequest, *models.OpenPageRequest:
		if err := v.check(ctx, val, fields); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidPageURL, err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, value)
	}
}

func (v *structValidator) check(ctx context.Context, value any, fields []string) error {
	if len(fields) > 0 {
		return v.validate.StructPartialCtx(ctx, value, fields...)
	}
	return v.validate.StructCtx(ctx, value)
}
