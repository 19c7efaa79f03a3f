package errors

import "errors"

// ErrStateConflict the record changed state since it was read, e.g. a focus session that was already ended
var ErrStateConflict = errors.New("record state changed, refresh and retry")
