package term

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
)

func TestIsTerminal_RegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "input"))
	assert.NilError(t, err)
	defer f.Close()

	assert.Assert(t, !IsTerminal(f.Fd()))
	assert.Assert(t, !IsInteractive(f))
}

func TestIsTerminal_Pipe(t *testing.T) {
	r, w, err := os.Pipe()
	assert.NilError(t, err)
	defer r.Close()
	defer w.Close()

	assert.Assert(t, !IsInteractive(r))
	assert.Assert(t, !IsInteractive(w))
}

func TestIsInteractive_Nil(t *testing.T) {
	assert.Assert(t, !IsInteractive(nil))
}
