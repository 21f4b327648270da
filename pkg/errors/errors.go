package errors

import "errors"

// ErrOptimisticLock is returned by repository updates when the row was
// modified by another operation between read and write.
var ErrOptimisticLock = errors.New("record was modified by another operation, refresh and retry")
