package opcode

import (
	"testing"

	"github.com/oisee/w86emu/pkg/cpu"
)

func TestCategoryStringNeverEmpty(t *testing.T) {
	for c := CategoryUndefined; c <= CategoryGroup; c++ {
		if c.String() == "" {
			t.Errorf("Category(%d).String() is empty", c)
		}
	}
}

func TestLookupMissingIsUndefined(t *testing.T) {
	for _, op := range []Opcode{0x0F, 0x60, 0x6F, 0xD6, 0xF1} {
		if _, ok := Lookup(op); ok {
			t.Errorf("Lookup(%#02x): expected no catalog entry, got one", op)
		}
	}
}

// TestImplementedMatchesCPU cross-checks a sample of single-byte, no-operand
// opcodes against pkg/cpu's actual Step classification, so the catalog can't
// silently drift from the engine it describes.
func TestImplementedMatchesCPU(t *testing.T) {
	singleByte := []byte{0xF8, 0xF9, 0xF5, 0xFA, 0xFB, 0xFC, 0xFD, 0xF4, 0x90}
	for _, op := range singleByte {
		s := cpu.NewState()
		s.Memory[0] = op
		status := cpu.Step(s)

		info, ok := Lookup(Opcode(op))
		if !ok {
			t.Fatalf("opcode %#02x missing from catalog", op)
		}
		wantImplemented := status == cpu.StatusSuccess
		if info.Implemented != wantImplemented {
			t.Errorf("opcode %#02x: catalog.Implemented=%v, cpu.Step status=%v", op, info.Implemented, status)
		}
	}
}

func TestUnimplementedSampleMatchesCPU(t *testing.T) {
	for _, op := range []byte{0xAA, 0xA8, 0x84, 0x98} {
		s := cpu.NewState()
		s.Memory[0] = op
		status := cpu.Step(s)

		info, ok := Lookup(Opcode(op))
		if !ok {
			t.Fatalf("opcode %#02x missing from catalog", op)
		}
		if info.Implemented {
			t.Errorf("opcode %#02x: catalog says implemented, cpu.Step returned %v", op, status)
		}
		if status != cpu.StatusUnimplementedOpcode {
			t.Errorf("opcode %#02x: cpu.Step = %v, want unimplemented-opcode", op, status)
		}
	}
}
