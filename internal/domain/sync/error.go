package sync

import "errors"

// ErrStorage marks an unreadable database or filesystem. The build aborts
// whole: no partial snapshot is ever returned.
var ErrStorage = errors.New("storage unreadable")
