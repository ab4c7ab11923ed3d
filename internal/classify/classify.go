// Package classify decides whether a file buffer holds text or binary data.
package classify

import "bytes"

// sniffLen is how many leading bytes are inspected, matching git's heuristic.
const sniffLen = 8000

// Classifier reports whether a buffer should be treated as binary.
type Classifier interface {
	IsBinary(data []byte) bool
}

// Func adapts a plain function to the Classifier interface.
type Func func(data []byte) bool

// IsBinary calls f(data).
func (f Func) IsBinary(data []byte) bool {
	return f(data)
}

// Sniff is the default classifier: a NUL byte in the leading sniffLen bytes
// marks the buffer as binary. Empty buffers are text.
type Sniff struct{}

// IsBinary implements Classifier.
func (Sniff) IsBinary(data []byte) bool {
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	return bytes.IndexByte(data, 0) >= 0
}

// Default returns the classifier used when none is configured.
func Default() Classifier {
	return Sniff{}
}
