package ledger

import "sync"

// Memory is a ledger that never touches disk. It backs debug runs.
type Memory struct {
	mu       sync.Mutex
	seed     []string
	appended []string
}

func NewMemory(seed []string) *Memory {
	return &Memory{seed: seed}
}

func (m *Memory) Fingerprints() []string {
	out := make([]string, len(m.seed))
	copy(out, m.seed)
	return out
}

func (m *Memory) Append(fingerprint string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appended = append(m.appended, fingerprint)
	return nil
}

// Appended returns the fingerprints recorded since the ledger was created.
func (m *Memory) Appended() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.appended))
	copy(out, m.appended)
	return out
}

func (m *Memory) FirstRun() bool {
	return false
}

func (m *Memory) Close() error {
	return nil
}
