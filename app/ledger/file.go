package ledger

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// FileLedger stores one fingerprint per line in a plain text file. The
// file's existence at startup is what marks a run as not being the first.
type FileLedger struct {
	path         string
	firstRun     bool
	fingerprints []string
}

func OpenFile(path string) (*FileLedger, error) {
	l := &FileLedger{path: path}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		l.firstRun = true
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		l.fingerprints = append(l.fingerprints, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	return l, nil
}

func (l *FileLedger) Fingerprints() []string {
	out := make([]string, len(l.fingerprints))
	copy(out, l.fingerprints)
	return out
}

func (l *FileLedger) FirstRun() bool {
	return l.firstRun
}

// Append opens the file, writes one line, syncs and closes it again.
func (l *FileLedger) Append(fingerprint string) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open ledger for append: %w", err)
	}

	if _, err := f.WriteString(fingerprint + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("failed to append to ledger: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("failed to sync ledger: %w", err)
	}

	return f.Close()
}

func (l *FileLedger) Close() error {
	return nil
}
