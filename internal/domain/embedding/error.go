package embedding

import "errors"

// ErrDataCorruption marks a stored vector that no longer parses. This is a
// persistent data problem, not a transient failure.
var ErrDataCorruption = errors.New("stored embedding vector is corrupt")
