// Package history keeps undo and redo stacks of full document snapshots.
//
// Snapshots are opaque strings; the caller serializes the document before
// pushing and deserializes what Undo and Redo hand back. Because strings are
// immutable a stored snapshot can never change after it was taken.
package history

// Manager holds the two snapshot stacks.
type Manager struct {
	undo  []string
	redo  []string
	limit int
}

// NewManager creates a manager keeping at most limit undo snapshots. When the
// limit is exceeded the oldest snapshot is dropped. A limit of zero or less
// keeps everything.
func NewManager(limit int) *Manager {
	return &Manager{limit: limit}
}

// Push records the state before a mutation and discards every redo state.
func (m *Manager) Push(snapshot string) {
	m.undo = append(m.undo, snapshot)
	if m.limit > 0 && len(m.undo) > m.limit {
		m.undo = append(m.undo[:0], m.undo[len(m.undo)-m.limit:]...)
	}
	m.redo = m.redo[:0]
}

// Undo pops the most recent undo snapshot, remembering current for Redo.
// It reports false, leaving both stacks untouched, when there is nothing to undo.
func (m *Manager) Undo(current string) (string, bool) {
	if len(m.undo) == 0 {
		return "", false
	}
	prev := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, current)
	return prev, true
}

// Redo pops the most recent redo snapshot, remembering current for Undo.
// It reports false, leaving both stacks untouched, when there is nothing to redo.
func (m *Manager) Redo(current string) (string, bool) {
	if len(m.redo) == 0 {
		return "", false
	}
	next := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, current)
	return next, true
}

func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// Depth returns the sizes of the undo and redo stacks.
func (m *Manager) Depth() (undo, redo int) {
	return len(m.undo), len(m.redo)
}
