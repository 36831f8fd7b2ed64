package image

import "errors"

var (
	ErrOwnerCount        = errors.New("an image must have exactly one owner")
	ErrOwnerTypeMismatch = errors.New("image owner does not match image type")
)
