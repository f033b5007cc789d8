package extract

import "errors"

// Failure taxonomy for an extraction task. All of these propagate to the
// task boundary uncaught; any retry policy belongs to the surrounding
// queue runtime.
var (
	// ErrUnknownEncoding reports a task configuration key that is not a
	// recognized encoding name. The whole task fails before any
	// subprocess is spawned.
	ErrUnknownEncoding = errors.New("not a valid strings encoding name")

	// ErrNoOutput reports that extraction finished for every requested
	// pair but produced no output entries.
	ErrNoOutput = errors.New("no strings extracted from the provided files")
)
