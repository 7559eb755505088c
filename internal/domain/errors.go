package domain

import "errors"

// Error kinds. Callers wrap these with context and match with errors.Is.
var (
	ErrDataLoad   = errors.New("data load error")
	ErrSelection  = errors.New("selection error")
	ErrDateFormat = errors.New("date format error")
	ErrRender     = errors.New("render error")
	ErrIO         = errors.New("io error")
)
