package debuginfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"), zerolog.Nop())
	assert.Error(t, err)
}

func TestOpen_NotAnELF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.txt")
	err := os.WriteFile(path, []byte("not an executable"), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	_, err = Open(path, zerolog.Nop())
	assert.Error(t, err)
}
