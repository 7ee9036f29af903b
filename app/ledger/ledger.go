package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

type Driver string

const (
	DriverFile   Driver = "file"
	DriverSQLite Driver = "sqlite"
)

// Ledger is the durable, append-only record of fingerprints that have
// already been handled.
type Ledger interface {
	// Fingerprints returns what was recorded before this process started.
	Fingerprints() []string
	// Append durably records a fingerprint before returning.
	Append(fingerprint string) error
	// FirstRun reports whether the ledger did not exist at startup.
	FirstRun() bool
	Close() error
}

type Options struct {
	Driver Driver
	Path   string
	// ReadOnly loads whatever is on disk into memory and never writes back.
	// A read-only ledger never reports a first run.
	ReadOnly bool
}

func Open(opts Options) (Ledger, error) {
	if opts.ReadOnly {
		return openReadOnly(opts)
	}

	switch opts.Driver {
	case DriverFile, "":
		return OpenFile(opts.Path)
	case DriverSQLite:
		return OpenSQLite(opts.Path)
	default:
		return nil, fmt.Errorf("unknown ledger driver: %s", opts.Driver)
	}
}

func openReadOnly(opts Options) (Ledger, error) {
	if !exists(opts.Path) {
		return NewMemory(nil), nil
	}

	switch opts.Driver {
	case DriverFile, "":
		base, err := OpenFile(opts.Path)
		if err != nil {
			return nil, err
		}
		return NewMemory(base.Fingerprints()), nil
	case DriverSQLite:
		fingerprints, err := readSQLite(opts.Path)
		if err != nil {
			return nil, err
		}
		return NewMemory(fingerprints), nil
	default:
		return nil, fmt.Errorf("unknown ledger driver: %s", opts.Driver)
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
