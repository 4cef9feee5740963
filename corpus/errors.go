package corpus

import "errors"

var (
	// ErrMalformedLine indicates a corpus line that is not valid JSON.
	ErrMalformedLine = errors.New("malformed corpus line")

	// ErrInvalidPageID indicates a page_id value that cannot be used as an integer id.
	ErrInvalidPageID = errors.New("page_id is not usable as an integer id")

	// ErrScannerClosed indicates the scanner was used after Close.
	ErrScannerClosed = errors.New("corpus scanner is closed")
)
