package feed

import "errors"

var (
	ErrMissingColumn    = errors.New("missing required column")
	ErrMalformedRecord  = errors.New("malformed record")
	ErrUnknownPolicy    = errors.New("unknown malformed record policy")
	ErrEmptyOrderSource = errors.New("order source has no header")
)
