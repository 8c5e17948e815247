package debuginfo

import (
	"debug/dwarf"
	"debug/elf"
	"fmt"

	"github.com/rs/zerolog"
)

// Session owns an opened binary and its DWARF data. It is the only
// long-lived handle in the package and is read-only after Open.
type Session struct {
	binaryPath string
	elfFile    *elf.File
	dwarfData  *dwarf.Data
	logger     zerolog.Logger
}

// Open opens the binary at path and loads its DWARF debug information.
// A binary that cannot be opened or carries no debug info is a fatal
// condition for the whole run, so both surface as errors here.
func Open(path string, logger zerolog.Logger) (*Session, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open binary %s: %w", path, err)
	}

	dwarfData, err := f.DWARF()
	if err != nil {
		f.Close() // nolint:errcheck
		return nil, fmt.Errorf("no usable debug info in %s (stripped binary?): %w", path, err)
	}

	s := &Session{
		binaryPath: path,
		elfFile:    f,
		dwarfData:  dwarfData,
		logger:     logger.With().Str("component", "debuginfo").Logger(),
	}

	s.logger.Debug().Str("binary", path).Msg("DWARF debug info loaded")

	return s, nil
}

// BinaryPath returns the path of the binary under inspection.
func (s *Session) BinaryPath() string {
	return s.binaryPath
}

// Units materializes every compilation unit in the binary: all entries in
// document order plus the unit's line-program file table.
func (s *Session) Units() ([]*Unit, error) {
	reader := s.dwarfData.Reader()

	var units []*Unit
	var current *Unit
	for {
		entry, err := reader.Next()
		if err != nil {
			return nil, fmt.Errorf("failed to read debug entries: %w", err)
		}
		if entry == nil {
			break
		}

		if entry.Tag == dwarf.TagCompileUnit {
			files, err := s.unitFiles(entry)
			if err != nil {
				return nil, err
			}
			current = newUnit(entry, files)
			units = append(units, current)
			continue
		}

		// Null entries only close subtrees; the document-order walk
		// doesn't track nesting, so they carry no information here.
		if entry.Tag == 0 {
			continue
		}
		if current == nil {
			s.logger.Warn().
				Uint64("offset", uint64(entry.Offset)).
				Msg("Entry precedes any compilation unit, skipping")
			continue
		}
		current.add(newEntry(entry))
	}

	s.logger.Debug().
		Int("unit_count", len(units)).
		Str("binary", s.binaryPath).
		Msg("Materialized compilation units")

	return units, nil
}

// unitFiles loads the line-program file table for a compilation unit root
// entry. Units without a line program get a nil table; any nonzero file
// index against it then fails resolution as corrupt debug info.
func (s *Session) unitFiles(root *dwarf.Entry) ([]*dwarf.LineFile, error) {
	lr, err := s.dwarfData.LineReader(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read line program for unit at 0x%x: %w", root.Offset, err)
	}
	if lr == nil {
		return nil, nil
	}
	return lr.Files(), nil
}

// Close releases the underlying file handle.
func (s *Session) Close() error {
	if s.elfFile != nil {
		return s.elfFile.Close()
	}
	return nil
}
