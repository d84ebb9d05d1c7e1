package core

import "errors"

// ErrPageOutOfRange is returned when a page number is outside 1..NumPages.
var ErrPageOutOfRange = errors.New("page out of range")
