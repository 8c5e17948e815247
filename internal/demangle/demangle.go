// Package demangle converts mangled linker symbols into human-readable
// source-level names. The primary implementation shells out to c++filt, one
// blocking call per symbol; when c++filt is not installed, an in-process
// demangler keeps --demangle working.
package demangle

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/ianlancetaylor/demangle"
	"github.com/rs/zerolog"
)

// Demangler converts one mangled symbol to its human-readable form.
// Implementations are used once per distinct symbol in the report;
// a failure concerns only that symbol.
type Demangler interface {
	Demangle(symbol string) (string, error)
}

// Filt demangles by invoking the external c++filt tool.
type Filt struct {
	path string
}

// NewFilt locates c++filt on PATH.
func NewFilt() (*Filt, error) {
	path, err := exec.LookPath("c++filt")
	if err != nil {
		return nil, fmt.Errorf("c++filt not found: %w", err)
	}
	return &Filt{path: path}, nil
}

// Demangle runs c++filt on the symbol. c++filt echoes symbols it cannot
// demangle, so a successful run always yields a printable name.
func (f *Filt) Demangle(symbol string) (string, error) {
	out, err := exec.Command(f.path, symbol).Output()
	if err != nil {
		return "", fmt.Errorf("c++filt failed for %q: %w", symbol, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Native demangles in-process. It accepts Itanium C++ and Rust manglings.
type Native struct{}

// Demangle converts the symbol without leaving the process.
func (Native) Demangle(symbol string) (string, error) {
	demangled, err := demangle.ToString(symbol)
	if err != nil {
		return "", fmt.Errorf("cannot demangle %q: %w", symbol, err)
	}
	return demangled, nil
}

// Default returns the c++filt demangler when the tool is installed and the
// in-process demangler otherwise.
func Default(logger zerolog.Logger) Demangler {
	filt, err := NewFilt()
	if err != nil {
		logger.Debug().Err(err).Msg("Falling back to in-process demangler")
		return Native{}
	}
	return filt
}
