// Package conformance runs JSON-described test vectors against pkg/cpu.Step
// and reports pass/fail, distributing vectors across a worker pool the way
// the teacher's search package distributes search tasks.
package conformance

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/oisee/w86emu/pkg/cpu"
)

// VectorState is the subset of cpu.State a vector cares about. Every field
// is optional; absent fields are left at whatever the engine produced (for
// Expected) or left zero (for Initial).
type VectorState struct {
	AX     *uint16          `json:"ax,omitempty"`
	BX     *uint16          `json:"bx,omitempty"`
	CX     *uint16          `json:"cx,omitempty"`
	DX     *uint16          `json:"dx,omitempty"`
	SI     *uint16          `json:"si,omitempty"`
	DI     *uint16          `json:"di,omitempty"`
	SP     *uint16          `json:"sp,omitempty"`
	BP     *uint16          `json:"bp,omitempty"`
	CS     *uint16          `json:"cs,omitempty"`
	DS     *uint16          `json:"ds,omitempty"`
	ES     *uint16          `json:"es,omitempty"`
	SS     *uint16          `json:"ss,omitempty"`
	IP     *uint16          `json:"ip,omitempty"`
	Flags  *uint16          `json:"flags,omitempty"`
	Memory map[string]uint8 `json:"memory,omitempty"` // key: hex linear address, e.g. "0x100"
}

// Vector is one named conformance test: load Initial, run Memory as code
// for Steps decode-execute cycles, then compare against Expected.
type Vector struct {
	Name     string      `json:"name"`
	Initial  VectorState `json:"initial"`
	Steps    int         `json:"steps"`
	Expected VectorState `json:"expected"`
}

// LoadVectors decodes a JSON array of Vector from r.
func LoadVectors(r io.Reader) ([]Vector, error) {
	var vectors []Vector
	if err := json.NewDecoder(r).Decode(&vectors); err != nil {
		return nil, fmt.Errorf("conformance: decode vectors: %w", err)
	}
	return vectors, nil
}

func applyState(s *cpu.State, vs VectorState) {
	if vs.AX != nil {
		s.AX = *vs.AX
	}
	if vs.BX != nil {
		s.BX = *vs.BX
	}
	if vs.CX != nil {
		s.CX = *vs.CX
	}
	if vs.DX != nil {
		s.DX = *vs.DX
	}
	if vs.SI != nil {
		s.SI = *vs.SI
	}
	if vs.DI != nil {
		s.DI = *vs.DI
	}
	if vs.SP != nil {
		s.SP = *vs.SP
	}
	if vs.BP != nil {
		s.BP = *vs.BP
	}
	if vs.CS != nil {
		s.CS = *vs.CS
	}
	if vs.DS != nil {
		s.DS = *vs.DS
	}
	if vs.ES != nil {
		s.ES = *vs.ES
	}
	if vs.SS != nil {
		s.SS = *vs.SS
	}
	if vs.IP != nil {
		s.IP = *vs.IP
	}
	if vs.Flags != nil {
		s.Flags = *vs.Flags
	}
	for addrHex, v := range vs.Memory {
		addr, err := parseHexAddr(addrHex)
		if err != nil {
			continue
		}
		s.Memory[addr] = v
	}
}

// diffState compares got against want, returning a human-readable mismatch
// per field that want specifies and got does not match.
func diffState(s *cpu.State, want VectorState) []string {
	var mismatches []string
	check := func(name string, want *uint16, got uint16) {
		if want != nil && *want != got {
			mismatches = append(mismatches, fmt.Sprintf("%s: got %#04x, want %#04x", name, got, *want))
		}
	}
	check("AX", want.AX, s.AX)
	check("BX", want.BX, s.BX)
	check("CX", want.CX, s.CX)
	check("DX", want.DX, s.DX)
	check("SI", want.SI, s.SI)
	check("DI", want.DI, s.DI)
	check("SP", want.SP, s.SP)
	check("BP", want.BP, s.BP)
	check("CS", want.CS, s.CS)
	check("DS", want.DS, s.DS)
	check("ES", want.ES, s.ES)
	check("SS", want.SS, s.SS)
	check("IP", want.IP, s.IP)
	check("Flags", want.Flags, s.Flags)

	for addrHex, wantVal := range want.Memory {
		addr, err := parseHexAddr(addrHex)
		if err != nil {
			continue
		}
		if got := s.Memory[addr]; got != wantVal {
			mismatches = append(mismatches, fmt.Sprintf("mem[%s]: got %#02x, want %#02x", addrHex, got, wantVal))
		}
	}
	return mismatches
}

func parseHexAddr(s string) (uint32, error) {
	var addr uint32
	_, err := fmt.Sscanf(s, "0x%x", &addr)
	return addr, err
}
