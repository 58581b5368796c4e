package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")

	ErrInvalidFavorite = errors.New("invalid favorite")
	ErrInvalidPageURL  = errors.New("invalid page url")
)
