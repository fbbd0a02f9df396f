package cpu

// execMov implements MOV: opcodes 0x88-0x8C, 0x8E, 0xA0-0xA3, 0xB0-0xBF,
// 0xC6/0xC7 (spec §4.4). Writing CS via MOV-to-segment (0x8E) is rejected
// with StatusInvalidOperation.
func execMov(s *State, offset uint16, p Prefixes) Status {
	op := s.ReadByte(s.CS, offset)
	switch {
	case op == 0x88 || op == 0x89 || op == 0x8A || op == 0x8B || op == 0x8C || op == 0x8E:
		return movModRM(s, offset, p, op)
	case op == 0xA0 || op == 0xA1 || op == 0xA2 || op == 0xA3:
		return movDirect(s, offset, p, op)
	case op >= 0xB0 && op <= 0xBF:
		return movImmToReg(s, offset, op)
	case op == 0xC6 || op == 0xC7:
		return movImmToRM(s, offset, p, op)
	}
	return StatusUndefinedOpcode
}

func movModRM(s *State, offset uint16, p Prefixes, op byte) Status {
	m := parseModRM(s, s.CS, offset+1, p)

	switch op {
	case 0x88: // r/m8 <- reg8
		setRMByte(s, m, getRegByte(s, m))
	case 0x89: // r/m16 <- reg16
		setRMWord(s, m, getRegWord(s, m))
	case 0x8A: // reg8 <- r/m8
		setRegByte(s, m, getRMByte(s, m))
	case 0x8B: // reg16 <- r/m16
		setRegWord(s, m, getRMWord(s, m))
	case 0x8C: // r/m16 <- segreg
		v, ok := getSegment(s, m)
		if !ok {
			return StatusInvalidOperation
		}
		setRMWord(s, m, v)
	case 0x8E: // segreg <- r/m16; CS is not a legal destination
		if segReg(m.Reg) == segCS {
			return StatusInvalidOperation
		}
		if !setSegment(s, m, getRMWord(s, m)) {
			return StatusInvalidOperation
		}
	}

	s.IP = offset + 2 + m.Size
	return StatusSuccess
}

func movDirect(s *State, offset uint16, p Prefixes, op byte) Status {
	addr := s.ReadWord(s.CS, offset+1)
	seg := s.GetSegment(p.segmentOrDefault(segDS))

	switch op {
	case 0xA0: // AL <- [addr]
		s.SetByte(regAL, s.ReadByte(seg, addr))
	case 0xA1: // AX <- [addr]
		s.AX = s.ReadWord(seg, addr)
	case 0xA2: // [addr] <- AL
		s.WriteByte(seg, addr, s.GetByte(regAL))
	case 0xA3: // [addr] <- AX
		s.WriteWord(seg, addr, s.AX)
	}

	s.IP = offset + 3
	return StatusSuccess
}

func movImmToReg(s *State, offset uint16, op byte) Status {
	reg := op & 0b111
	if op < 0xB8 {
		imm := s.ReadByte(s.CS, offset+1)
		s.SetByte(byteReg(reg), imm)
		s.IP = offset + 2
	} else {
		imm := s.ReadWord(s.CS, offset+1)
		s.SetWord(wordReg(reg), imm)
		s.IP = offset + 3
	}
	return StatusSuccess
}

func movImmToRM(s *State, offset uint16, p Prefixes, op byte) Status {
	m := parseModRM(s, s.CS, offset+1, p)
	if m.Reg != 0b000 {
		return StatusInvalidOperation
	}
	immOffset := offset + 2 + m.Size

	if op == 0xC6 {
		imm := s.ReadByte(s.CS, immOffset)
		setRMByte(s, m, imm)
		s.IP = immOffset + 1
	} else {
		imm := s.ReadWord(s.CS, immOffset)
		setRMWord(s, m, imm)
		s.IP = immOffset + 2
	}
	return StatusSuccess
}
