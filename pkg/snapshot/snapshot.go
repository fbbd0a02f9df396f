// Package snapshot persists and restores a cpu.State so a host harness can
// checkpoint a run and resume it later (spec §6's optional debug/tooling
// surface). It is not part of the architectural contract of pkg/cpu.
package snapshot

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/oisee/w86emu/pkg/cpu"
)

// Snapshot is the on-disk/on-wire representation of a cpu.State: the
// register file plus memory and I/O images, gob-encoded in full (no delta
// compression) since a 1 MiB memory image is small enough to round-trip
// whole.
type Snapshot struct {
	Registers cpu.Registers
	Memory    []byte
	In        [1 << 16]byte
	Out       [1 << 16]byte
}

// FromState captures a Snapshot of s. The returned Snapshot owns its own
// copy of Memory; mutating s afterward does not affect it.
func FromState(s *cpu.State) *Snapshot {
	mem := make([]byte, len(s.Memory))
	copy(mem, s.Memory)
	return &Snapshot{
		Registers: s.Registers,
		Memory:    mem,
		In:        s.IO.In,
		Out:       s.IO.Out,
	}
}

// Restore builds a new cpu.State from the snapshot.
func (snap *Snapshot) Restore() *cpu.State {
	s := cpu.NewState()
	s.Registers = snap.Registers
	copy(s.Memory, snap.Memory)
	s.IO.In = snap.In
	s.IO.Out = snap.Out
	return s
}

// Save gob-encodes snap to w.
func Save(w io.Writer, snap *Snapshot) error {
	return gob.NewEncoder(w).Encode(snap)
}

// Load decodes a Snapshot from r.
func Load(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := gob.NewDecoder(r).Decode(&snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// SaveFile writes a Snapshot of s to path.
func SaveFile(path string, s *cpu.State) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: create %s: %w", path, err)
	}
	defer f.Close()
	return Save(f, FromState(s))
}

// LoadFile reads a Snapshot from path and restores it into a new cpu.State.
func LoadFile(path string) (*cpu.State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open %s: %w", path, err)
	}
	defer f.Close()
	snap, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("snapshot: decode %s: %w", path, err)
	}
	return snap.Restore(), nil
}
