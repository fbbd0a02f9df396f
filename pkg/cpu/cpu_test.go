package cpu

import "testing"

func newTestState() *State {
	return NewState()
}

// --- literal end-to-end scenarios (spec §8) -----------------------------

func TestImmediateLoad(t *testing.T) {
	s := newTestState()
	copy(s.Memory, []byte{0xB8, 0x34, 0x12})
	before := s.Flags

	if st := Step(s); st != StatusSuccess {
		t.Fatalf("Step() = %v, want success", st)
	}
	if s.AX != 0x1234 {
		t.Errorf("AX = %#04x, want 0x1234", s.AX)
	}
	if s.IP != 3 {
		t.Errorf("IP = %d, want 3", s.IP)
	}
	if s.Flags != before {
		t.Errorf("FLAGS changed: %#04x -> %#04x", before, s.Flags)
	}
}

func TestAddOverflow(t *testing.T) {
	s := newTestState()
	s.AX = 0x7FFF
	copy(s.Memory, []byte{0x05, 0x01, 0x00}) // ADD AX, 1

	if st := Step(s); st != StatusSuccess {
		t.Fatalf("Step() = %v, want success", st)
	}
	if s.AX != 0x8000 {
		t.Errorf("AX = %#04x, want 0x8000", s.AX)
	}
	want := map[string]struct {
		flag uint16
		set  bool
	}{
		"CF": {FlagCF, false},
		"AF": {FlagAF, true},
		"ZF": {FlagZF, false},
		"SF": {FlagSF, true},
		"OF": {FlagOF, true},
		"PF": {FlagPF, true},
	}
	for name, w := range want {
		got := s.Flags&w.flag != 0
		if got != w.set {
			t.Errorf("%s = %v, want %v", name, got, w.set)
		}
	}
}

func TestSubProducingZero(t *testing.T) {
	s := newTestState()
	s.BX = 0x1234
	copy(s.Memory, []byte{0x81, 0xEB, 0x34, 0x12}) // SUB BX, 0x1234

	if st := Step(s); st != StatusSuccess {
		t.Fatalf("Step() = %v, want success", st)
	}
	if s.BX != 0 {
		t.Errorf("BX = %#04x, want 0", s.BX)
	}
	if s.Flags&FlagCF != 0 {
		t.Error("CF set, want clear")
	}
	if s.Flags&FlagZF == 0 {
		t.Error("ZF clear, want set")
	}
	if s.Flags&FlagSF != 0 {
		t.Error("SF set, want clear")
	}
	if s.Flags&FlagOF != 0 {
		t.Error("OF set, want clear")
	}
	if s.Flags&FlagPF == 0 {
		t.Error("PF clear, want set")
	}
}

func TestShortConditionalJumpTaken(t *testing.T) {
	s := newTestState()
	s.Flags = FlagZF
	copy(s.Memory, []byte{0x74, 0x05}) // JE +5

	if st := Step(s); st != StatusSuccess {
		t.Fatalf("Step() = %v, want success", st)
	}
	if s.IP != 7 {
		t.Errorf("IP = %d, want 7", s.IP)
	}
}

func TestNearCallRetPair(t *testing.T) {
	s := newTestState()
	s.SP = 0x0100
	copy(s.Memory[0:3], []byte{0xE8, 0x03, 0x00}) // CALL +3
	s.Memory[6] = 0xC3                            // RET

	if st := Step(s); st != StatusSuccess {
		t.Fatalf("CALL Step() = %v, want success", st)
	}
	if s.SP != 0x00FE {
		t.Errorf("SP after CALL = %#04x, want 0x00FE", s.SP)
	}
	if got := s.ReadWord(s.SS, s.SP); got != 0x0003 {
		t.Errorf("[SS:SP] after CALL = %#04x, want 0x0003", got)
	}
	if s.IP != 0x0006 {
		t.Errorf("IP after CALL = %#04x, want 0x0006", s.IP)
	}

	if st := Step(s); st != StatusSuccess {
		t.Fatalf("RET Step() = %v, want success", st)
	}
	if s.SP != 0x0100 {
		t.Errorf("SP after RET = %#04x, want 0x0100", s.SP)
	}
	if s.IP != 0x0003 {
		t.Errorf("IP after RET = %#04x, want 0x0003", s.IP)
	}
}

func TestSegmentOverrideLoad(t *testing.T) {
	s := newTestState()
	s.ES = 0x1000
	s.DS = 0x2000
	s.SI = 0x0010
	s.WriteByte(0x1000, 0x0010, 0xAB)
	s.WriteByte(0x2000, 0x0010, 0xCD)

	// With ES override: 26 8A 04 -> MOV AL, ES:[SI]
	copy(s.Memory[0:3], []byte{0x26, 0x8A, 0x04})
	if st := Step(s); st != StatusSuccess {
		t.Fatalf("Step() = %v, want success", st)
	}
	if al := s.GetByte(regAL); al != 0xAB {
		t.Errorf("AL = %#02x, want 0xAB (ES override)", al)
	}

	// Without override: 8A 04 -> MOV AL, [SI], defaults to DS.
	s.IP = 0
	copy(s.Memory[0:2], []byte{0x8A, 0x04})
	if st := Step(s); st != StatusSuccess {
		t.Fatalf("Step() = %v, want success", st)
	}
	if al := s.GetByte(regAL); al != 0xCD {
		t.Errorf("AL = %#02x, want 0xCD (DS default)", al)
	}
}

// --- universal invariants (spec §8) --------------------------------------

func TestWordRoundTripAcrossOffsetWrap(t *testing.T) {
	s := newTestState()
	s.WriteWord(0x1000, 0xFFFF, 0xBEEF)
	if got := s.ReadWord(0x1000, 0xFFFF); got != 0xBEEF {
		t.Errorf("round-trip at offset 0xFFFF = %#04x, want 0xBEEF", got)
	}
}

func TestLinearAddressWraps(t *testing.T) {
	// segment=0xFFFF, offset=0x0010 sums to exactly 0x100000, which wraps
	// modulo 2^20 back to linear address 0 (spec §4.1's 20-bit wrap).
	s := newTestState()
	s.WriteByte(0xFFFF, 0x0010, 0xAB)
	if got := s.ReadByte(0x0000, 0x0000); got != 0xAB {
		t.Errorf("wrapped read at 0x0000:0x0000 = %#02x, want 0xAB", got)
	}
}

func TestIncDecPreservesCF(t *testing.T) {
	for _, tc := range []struct {
		name string
		op   byte
	}{{"INC AX", 0x40}, {"DEC AX", 0x48}} {
		for _, cf := range []bool{false, true} {
			s := newTestState()
			if cf {
				s.Flags |= FlagCF
			}
			s.AX = 0x00FF
			copy(s.Memory, []byte{tc.op})
			if st := Step(s); st != StatusSuccess {
				t.Fatalf("%s: Step() = %v, want success", tc.name, st)
			}
			if got := s.Flags&FlagCF != 0; got != cf {
				t.Errorf("CF after %s = %v, want unchanged (%v)", tc.name, got, cf)
			}
		}
	}
}

func TestMovByteLeavesOtherHalfIntact(t *testing.T) {
	s := newTestState()
	s.AX = 0xBEEF
	copy(s.Memory, []byte{0xB0, 0x11}) // MOV AL, 0x11
	if st := Step(s); st != StatusSuccess {
		t.Fatalf("Step() = %v, want success", st)
	}
	if s.AX != 0xBE11 {
		t.Errorf("AX = %#04x, want 0xBE11 (AH untouched)", s.AX)
	}
}

func TestReservedFlagsNeverWritten(t *testing.T) {
	const reserved = 1<<1 | 1<<3 | 1<<5 | 0xF000
	s := newTestState()
	s.Flags = reserved
	s.AX = 1
	copy(s.Memory, []byte{0x05, 0x01, 0x00}) // ADD AX, 1
	if st := Step(s); st != StatusSuccess {
		t.Fatalf("Step() = %v, want success", st)
	}
	if s.Flags&reserved != reserved {
		t.Errorf("reserved bits altered: FLAGS = %#04x", s.Flags)
	}
}

func TestJccSymmetry(t *testing.T) {
	for pair := byte(0); pair < 8; pair++ {
		for flags := uint16(0); flags < 0x1000; flags += 0x011 {
			a := jccTaken(pair*2, flags)
			b := jccTaken(pair*2+1, flags)
			if a == b {
				t.Fatalf("pair (%#02x,%#02x) at flags %#04x: both %v", pair*2, pair*2+1, flags, a)
			}
		}
	}
}

func TestUnimplementedAndUndefinedOpcodes(t *testing.T) {
	s := newTestState()
	s.Memory[0] = 0xAA // STOSB: recognized, unimplemented
	if st := Step(s); st != StatusUnimplementedOpcode {
		t.Errorf("0xAA -> %v, want unimplemented-opcode", st)
	}

	s2 := newTestState()
	s2.Memory[0] = 0x0F // not a valid baseline 8086 encoding
	if st := Step(s2); st != StatusUndefinedOpcode {
		t.Errorf("0x0F -> %v, want undefined-opcode", st)
	}
}

func TestMovToCSRejected(t *testing.T) {
	s := newTestState()
	// 8E D9 -> MOV DS, CX is legal; MOV CS, CX (reg=001) must be rejected.
	copy(s.Memory, []byte{0x8E, 0xC9}) // mod=11 reg=001(CS) rm=001(CX)
	if st := Step(s); st != StatusInvalidOperation {
		t.Errorf("MOV CS, CX -> %v, want invalid-operation", st)
	}
}

func TestXchgAXSelfIsNop(t *testing.T) {
	s := newTestState()
	s.AX = 0x1234
	s.Memory[0] = 0x90 // XCHG AX, AX
	if st := Step(s); st != StatusSuccess {
		t.Fatalf("Step() = %v, want success", st)
	}
	if s.AX != 0x1234 {
		t.Errorf("AX = %#04x, want unchanged 0x1234", s.AX)
	}
}

func TestImmediateGroupFallthroughDoesNotCascade(t *testing.T) {
	s := newTestState()
	// 80 C8 imm -> reg field 001 = OR, unimplemented; must not cascade into
	// the ADD/SUB/CMP handlers of groupImmediate.
	copy(s.Memory, []byte{0x80, 0xC8, 0x01})
	if st := Step(s); st != StatusUnimplementedOpcode {
		t.Errorf("OR r/m8,imm8 -> %v, want unimplemented-opcode", st)
	}
}
