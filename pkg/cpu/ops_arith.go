package cpu

// aluFunc is either add or sub, the pure primitives from flags.go.
type aluFunc func(a, b uint16, w width) addResult

// execAdd implements ADD: direct forms 0x00-0x05 plus the immediate group
// (0x80-0x83, reached only when groupImmediate already matched reg==000).
func execAdd(s *State, offset uint16, p Prefixes) Status {
	return execArith(s, offset, p, 0x00, add, true)
}

// execSub implements SUB: direct forms 0x28-0x2D plus the immediate group
// (reg==101).
func execSub(s *State, offset uint16, p Prefixes) Status {
	return execArith(s, offset, p, 0x28, sub, true)
}

// execCmp implements CMP: direct forms 0x38-0x3D plus the immediate group
// (reg==111). CMP performs a subtract but commits only the flags.
func execCmp(s *State, offset uint16, p Prefixes) Status {
	return execArith(s, offset, p, 0x38, sub, false)
}

// execArith is the shared body for ADD/SUB/CMP: base selects the direct-form
// opcode block (0x00/0x28/0x38), compute is the pure ALU primitive, and
// commit controls whether the result is written back (false for CMP).
func execArith(s *State, offset uint16, p Prefixes, base byte, compute aluFunc, commit bool) Status {
	op := s.ReadByte(s.CS, offset)
	if op >= 0x80 && op <= 0x83 {
		return arithImmediate(s, offset, p, op, compute, commit)
	}
	return arithDirect(s, offset, p, base, compute, commit)
}

func arithDirect(s *State, offset uint16, p Prefixes, base byte, compute aluFunc, commit bool) Status {
	op := s.ReadByte(s.CS, offset)
	switch op - base {
	case 0: // r/m8, reg8
		m := parseModRM(s, s.CS, offset+1, p)
		r := compute(uint16(getRMByte(s, m)), uint16(getRegByte(s, m)), width8)
		if commit {
			setRMByte(s, m, uint8(r.Result))
		}
		s.Flags = mergeFlags(s.Flags, r.Flags, arithOwnedFlags)
		s.IP = offset + 2 + m.Size
	case 1: // r/m16, reg16
		m := parseModRM(s, s.CS, offset+1, p)
		r := compute(getRMWord(s, m), getRegWord(s, m), width16)
		if commit {
			setRMWord(s, m, r.Result)
		}
		s.Flags = mergeFlags(s.Flags, r.Flags, arithOwnedFlags)
		s.IP = offset + 2 + m.Size
	case 2: // reg8, r/m8
		m := parseModRM(s, s.CS, offset+1, p)
		r := compute(uint16(getRegByte(s, m)), uint16(getRMByte(s, m)), width8)
		if commit {
			setRegByte(s, m, uint8(r.Result))
		}
		s.Flags = mergeFlags(s.Flags, r.Flags, arithOwnedFlags)
		s.IP = offset + 2 + m.Size
	case 3: // reg16, r/m16
		m := parseModRM(s, s.CS, offset+1, p)
		r := compute(getRegWord(s, m), getRMWord(s, m), width16)
		if commit {
			setRegWord(s, m, r.Result)
		}
		s.Flags = mergeFlags(s.Flags, r.Flags, arithOwnedFlags)
		s.IP = offset + 2 + m.Size
	case 4: // AL, imm8
		imm := s.ReadByte(s.CS, offset+1)
		r := compute(uint16(s.GetByte(regAL)), uint16(imm), width8)
		if commit {
			s.SetByte(regAL, uint8(r.Result))
		}
		s.Flags = mergeFlags(s.Flags, r.Flags, arithOwnedFlags)
		s.IP = offset + 2
	case 5: // AX, imm16
		imm := s.ReadWord(s.CS, offset+1)
		r := compute(s.AX, imm, width16)
		if commit {
			s.AX = r.Result
		}
		s.Flags = mergeFlags(s.Flags, r.Flags, arithOwnedFlags)
		s.IP = offset + 3
	default:
		return StatusUndefinedOpcode
	}
	return StatusSuccess
}

func arithImmediate(s *State, offset uint16, p Prefixes, op byte, compute aluFunc, commit bool) Status {
	m := parseModRM(s, s.CS, offset+1, p)
	immOffset := offset + 2 + m.Size

	switch op {
	case 0x80, 0x82: // r/m8, imm8 (0x82 is an undocumented alias of 0x80)
		imm := s.ReadByte(s.CS, immOffset)
		r := compute(uint16(getRMByte(s, m)), uint16(imm), width8)
		if commit {
			setRMByte(s, m, uint8(r.Result))
		}
		s.Flags = mergeFlags(s.Flags, r.Flags, arithOwnedFlags)
		s.IP = immOffset + 1
	case 0x81: // r/m16, imm16
		imm := s.ReadWord(s.CS, immOffset)
		r := compute(getRMWord(s, m), imm, width16)
		if commit {
			setRMWord(s, m, r.Result)
		}
		s.Flags = mergeFlags(s.Flags, r.Flags, arithOwnedFlags)
		s.IP = immOffset + 2
	case 0x83: // r/m16, imm8 sign-extended to 16 bits
		imm := uint16(int16(int8(s.ReadByte(s.CS, immOffset))))
		r := compute(getRMWord(s, m), imm, width16)
		if commit {
			setRMWord(s, m, r.Result)
		}
		s.Flags = mergeFlags(s.Flags, r.Flags, arithOwnedFlags)
		s.IP = immOffset + 1
	}
	return StatusSuccess
}

// execIncReg implements the single-byte register INC forms 0x40-0x47. CF is
// preserved across the flag merge (spec invariant I5).
func execIncReg(s *State, offset uint16, p Prefixes) Status {
	op := s.ReadByte(s.CS, offset)
	reg := wordReg(op & 0b111)
	r := add(s.GetWord(reg), 1, width16)
	s.SetWord(reg, r.Result)
	s.Flags = mergeFlags(s.Flags, r.Flags, incDecOwnedFlags)
	s.IP = offset + 1
	return StatusSuccess
}

// execDecReg implements the single-byte register DEC forms 0x48-0x4F.
func execDecReg(s *State, offset uint16, p Prefixes) Status {
	op := s.ReadByte(s.CS, offset)
	reg := wordReg(op & 0b111)
	r := sub(s.GetWord(reg), 1, width16)
	s.SetWord(reg, r.Result)
	s.Flags = mergeFlags(s.Flags, r.Flags, incDecOwnedFlags)
	s.IP = offset + 1
	return StatusSuccess
}

// execIncRM implements group-2 INC (0xFE/0xFF sub-opcode 000).
func execIncRM(s *State, offset uint16, p Prefixes) Status {
	return execIncDecRM(s, offset, p, add)
}

// execDecRM implements group-2 DEC (0xFE/0xFF sub-opcode 001).
func execDecRM(s *State, offset uint16, p Prefixes) Status {
	return execIncDecRM(s, offset, p, sub)
}

func execIncDecRM(s *State, offset uint16, p Prefixes, compute aluFunc) Status {
	op := s.ReadByte(s.CS, offset)
	m := parseModRM(s, s.CS, offset+1, p)

	if op == 0xFE {
		r := compute(uint16(getRMByte(s, m)), 1, width8)
		setRMByte(s, m, uint8(r.Result))
		s.Flags = mergeFlags(s.Flags, r.Flags, incDecOwnedFlags)
	} else {
		r := compute(getRMWord(s, m), 1, width16)
		setRMWord(s, m, r.Result)
		s.Flags = mergeFlags(s.Flags, r.Flags, incDecOwnedFlags)
	}
	s.IP = offset + 2 + m.Size
	return StatusSuccess
}
