// Package gate implements the one-shot parent/child synchronization channel.
//
// The parent holds the write end of a pipe; the child blocks reading the
// other end. Closing the write end (zero bytes transferred) means "the
// privilege map is committed, proceed". A readable abort byte means the
// parent failed before committing the map and the child must exit instead
// of proceeding.
package gate

import (
	"io"
	"os"

	"ccrun/pkg/errors"
)

// abortByte is the distinguished failure signal.
const abortByte = 0x1

// ChildFD is the file descriptor number the read end occupies in the
// child, directly after stdin/stdout/stderr.
const ChildFD = 3

// Gate is the parent's handle on the synchronization channel.
type Gate struct {
	r *os.File
	w *os.File
}

// New creates the channel. Must be called before spawning the child.
func New() (*Gate, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, errors.Wrapf(err, errors.SetupFailed, "create sync pipe: %v", err)
	}
	return &Gate{r: r, w: w}, nil
}

// ChildFile returns the read end for passing into the child process.
func (g *Gate) ChildFile() *os.File {
	return g.r
}

// CloseChildEnd drops the parent's copy of the read end. Call after the
// child has been spawned, or the child would never observe EOF.
func (g *Gate) CloseChildEnd() {
	_ = g.r.Close()
}

// Release closes the write end, unblocking the child to proceed.
func (g *Gate) Release() error {
	if err := g.w.Close(); err != nil {
		return errors.Wrapf(err, errors.GateFailed, "release gate: %v", err)
	}
	return nil
}

// Abort signals the child that the privilege map was never committed, then
// closes the channel. The child observes the byte and exits.
func (g *Gate) Abort() {
	_, _ = g.w.Write([]byte{abortByte})
	_ = g.w.Close()
}

// Wait blocks on the read end until the parent releases or aborts the
// gate. EOF with no payload means proceed; any payload means the parent
// aborted before committing the privilege map.
func Wait(r *os.File) error {
	buf := make([]byte, 1)
	n, err := r.Read(buf)
	_ = r.Close()
	if n > 0 {
		return errors.New(errors.MappingAborted)
	}
	if err != nil && err != io.EOF {
		return errors.Wrapf(err, errors.GateFailed, "read gate: %v", err)
	}
	return nil
}
