package gpio

// FakeWriter is a test double that records every Set call.
type FakeWriter struct {
	// States contains every value passed to Set, in order.
	States []bool

	// Closed tracks if Close was called.
	Closed bool

	// SetError, if set, will be returned by Set.
	SetError error
}

// NewFakeWriter creates an empty FakeWriter.
func NewFakeWriter() *FakeWriter {
	return &FakeWriter{}
}

// Set records the value.
func (f *FakeWriter) Set(on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.States = append(f.States, on)
	return nil
}

// Close marks the writer as closed.
func (f *FakeWriter) Close() error {
	f.Closed = true
	return nil
}

// Last returns the most recent value written, or false if none.
func (f *FakeWriter) Last() bool {
	if len(f.States) == 0 {
		return false
	}
	return f.States[len(f.States)-1]
}

// Reset clears recorded state.
func (f *FakeWriter) Reset() {
	f.States = nil
	f.Closed = false
	f.SetError = nil
}
