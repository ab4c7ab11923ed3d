package fingerprint

import "errors"

// Run-level failures. Per-file problems are logged and skipped, never returned.
var (
	// ErrAssetsDirMissing means the asset directory could not be listed.
	ErrAssetsDirMissing = errors.New("assets directory missing")

	// ErrTreeScan means the output tree root could not be enumerated.
	ErrTreeScan = errors.New("output tree scan failed")

	// ErrIterationCeiling means no fixed point was reached within MaxIterations.
	ErrIterationCeiling = errors.New("iteration ceiling reached, likely cyclic reference chain")
)
