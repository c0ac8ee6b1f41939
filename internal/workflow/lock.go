package workflow

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is created in the output directory while a run holds it.
const LockFileName = ".pdfmatch.lock"

// acquireOutputLock takes the exclusive lock on dir. The returned release
// function is safe to call once.
func acquireOutputLock(dir string) (func(), error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	lock := flock.New(filepath.Join(dir, LockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRunLocked, dir)
	}
	return func() { _ = lock.Unlock() }, nil
}
