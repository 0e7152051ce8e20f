package rcio

import "log/slog"

// MMap owns a byte slice backed by a memory mapping (or anything else
// that needs an explicit, length-aware unmap on release — tensor-file
// mapping itself is out of scope here; this is the scoped-handle shape
// the model-loading layer would hang a real mmap off of).
type MMap struct {
	handle *Handle
	data   []byte
}

// NewMMap wraps data (length len(data)) together with the function that
// unmaps it.
func NewMMap(name string, data []byte, unmap func(length int) error, log *slog.Logger) *MMap {
	m := &MMap{data: data}
	length := len(data)
	m.handle = New(name, log, func() error { return unmap(length) })
	return m
}

// Bytes returns the mapped region.
func (m *MMap) Bytes() []byte { return m.data }

// Close unmaps the region, logging (not raising) any failure.
func (m *MMap) Close() { m.handle.Close() }
