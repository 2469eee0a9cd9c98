package dedupe

import "errors"

// ErrNoPaths is returned when no paths are given. Apart from it, the
// pipeline returns an error only when the walk cannot start (an invalid
// include/exclude pattern); every other failure is captured per-entry and
// reported through ResultSet's error lists instead of propagating to the
// caller (§7).
var ErrNoPaths = errors.New("dedupe: no paths given")

// ScanError records a path where enumeration or stat failed.
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string { return "scan " + e.Path + ": " + e.Err.Error() }
func (e *ScanError) Unwrap() error { return e.Err }

// ProbeError records a path where a signature, side-sum, or full-file hash
// read failed, or where the binary refiner's compare failed (Stage is then
// StageBinary).
type ProbeError struct {
	Path  string
	Stage Stage
	Err   error
}

func (e *ProbeError) Error() string { return "probe " + e.Path + ": " + e.Err.Error() }
func (e *ProbeError) Unwrap() error { return e.Err }

// CompareError records a path where the binary refiner's byte-for-byte
// compare failed.
type CompareError struct {
	Path string
	Err  error
}

func (e *CompareError) Error() string { return "compare " + e.Path + ": " + e.Err.Error() }
func (e *CompareError) Unwrap() error { return e.Err }

// DeleteError records a path where purge's deletion failed.
type DeleteError struct {
	Path string
	Err  error
}

func (e *DeleteError) Error() string { return "delete " + e.Path + ": " + e.Err.Error() }
func (e *DeleteError) Unwrap() error { return e.Err }
