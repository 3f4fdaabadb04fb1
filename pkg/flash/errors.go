package flash

import "errors"

var (
	ErrSaveFailed  = errors.New("flash.save_failed")
	ErrLoadFailed  = errors.New("flash.load_failed")
	ErrInvalidData = errors.New("flash.invalid_data")
)
