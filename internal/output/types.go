package output

// Writer is an interface for log output writers.
type Writer interface {
	// Write writes the given bytes to the underlying output.
	Write(p []byte) (n int, err error)
	// Sync ensures that all data has been written.
	Sync() error
	// Close closes the writer and releases any resources.
	Close() error
}
