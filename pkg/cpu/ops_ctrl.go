package cpu

// execCallFar implements far direct CALL (0x9A): push CS, push the return
// offset, then load CS:IP from the 4-byte immediate. The observable stack
// image is [new_SP]=return_IP, [new_SP+2]=return_CS (spec §4.4).
func execCallFar(s *State, offset uint16, p Prefixes) Status {
	newIP := s.ReadWord(s.CS, offset+1)
	newCS := s.ReadWord(s.CS, offset+3)
	retIP := offset + 5
	retCS := s.CS

	s.SP -= 4
	s.WriteWord(s.SS, s.SP, retIP)
	s.WriteWord(s.SS, s.SP+2, retCS)

	s.CS = newCS
	s.IP = newIP
	return StatusSuccess
}

// execCallNear implements near direct CALL (0xE8): push the return offset,
// then add the signed 16-bit displacement to the IP of the following
// instruction (spec §9's near-jump displacement resolution).
func execCallNear(s *State, offset uint16, p Prefixes) Status {
	disp := int16(s.ReadWord(s.CS, offset+1))
	retIP := offset + 3

	s.SP -= 2
	s.WriteWord(s.SS, s.SP, retIP)

	s.IP = retIP + uint16(disp)
	return StatusSuccess
}

// execRetNear implements near RET (0xC2/0xC3): pop IP (read-then-SP+=2);
// an even opcode (0xC2) additionally adds a 16-bit immediate pop-count to
// SP after popping.
func execRetNear(s *State, offset uint16, p Prefixes) Status {
	op := s.ReadByte(s.CS, offset)

	retIP := s.ReadWord(s.SS, s.SP)
	s.SP += 2

	if op == 0xC2 {
		popCount := s.ReadWord(s.CS, offset+1)
		s.SP += popCount
	}

	s.IP = retIP
	return StatusSuccess
}

// execRetFar implements far RET (0xCA/0xCB): pop IP then CS, each
// read-then-SP+=2; an even opcode (0xCA) additionally adds a 16-bit
// immediate pop-count to SP after popping both.
func execRetFar(s *State, offset uint16, p Prefixes) Status {
	op := s.ReadByte(s.CS, offset)

	retIP := s.ReadWord(s.SS, s.SP)
	s.SP += 2
	retCS := s.ReadWord(s.SS, s.SP)
	s.SP += 2

	if op == 0xCA {
		popCount := s.ReadWord(s.CS, offset+1)
		s.SP += popCount
	}

	s.CS = retCS
	s.IP = retIP
	return StatusSuccess
}

// execJmpShort implements short JMP (0xEB): IP += sign-extended 8-bit
// displacement, relative to the IP of the following instruction.
func execJmpShort(s *State, offset uint16, p Prefixes) Status {
	disp := int8(s.ReadByte(s.CS, offset+1))
	next := offset + 2
	s.IP = next + uint16(int16(disp))
	return StatusSuccess
}

// execJmpNear implements near JMP (0xE9): IP += signed 16-bit displacement,
// relative to the IP of the following instruction.
func execJmpNear(s *State, offset uint16, p Prefixes) Status {
	disp := int16(s.ReadWord(s.CS, offset+1))
	next := offset + 3
	s.IP = next + uint16(disp)
	return StatusSuccess
}

// execJmpFar implements far JMP (0xEA): IP <- imm16, CS <- imm16.
func execJmpFar(s *State, offset uint16, p Prefixes) Status {
	newIP := s.ReadWord(s.CS, offset+1)
	newCS := s.ReadWord(s.CS, offset+3)
	s.IP = newIP
	s.CS = newCS
	return StatusSuccess
}

// jccTaken evaluates the condition named by the low 4 bits of a Jcc opcode
// against flags (spec §4.4's mapping table). Bit 0 of the opcode inverts
// the base condition formed by bits 3:1.
func jccTaken(opLow uint8, flags uint16) bool {
	var base bool
	switch opLow >> 1 {
	case 0b000: // JO/JNO
		base = flags&FlagOF != 0
	case 0b001: // JB/JAE
		base = flags&FlagCF != 0
	case 0b010: // JE/JNE
		base = flags&FlagZF != 0
	case 0b011: // JBE/JA
		base = flags&FlagCF != 0 || flags&FlagZF != 0
	case 0b100: // JS/JNS
		base = flags&FlagSF != 0
	case 0b101: // JP/JNP
		base = flags&FlagPF != 0
	case 0b110: // JL/JGE
		base = (flags&FlagSF != 0) != (flags&FlagOF != 0)
	case 0b111: // JLE/JG
		base = flags&FlagZF != 0 || (flags&FlagSF != 0) != (flags&FlagOF != 0)
	}
	if opLow&1 != 0 {
		return !base
	}
	return base
}

// execJcc implements the conditional short jumps 0x70-0x7F. If the
// condition holds, the sign-extended 8-bit displacement is added to the IP
// of the following instruction; otherwise IP merely advances past the
// 2-byte instruction.
func execJcc(s *State, offset uint16, p Prefixes) Status {
	op := s.ReadByte(s.CS, offset)
	disp := int8(s.ReadByte(s.CS, offset+1))
	next := offset + 2

	if jccTaken(op&0xF, s.Flags) {
		s.IP = next + uint16(int16(disp))
	} else {
		s.IP = next
	}
	return StatusSuccess
}

// execClc implements CLC (0xF8): clear CF.
func execClc(s *State, offset uint16, p Prefixes) Status {
	s.Flags &^= FlagCF
	s.IP = offset + 1
	return StatusSuccess
}

// execStc implements STC (0xF9): set CF.
func execStc(s *State, offset uint16, p Prefixes) Status {
	s.Flags |= FlagCF
	s.IP = offset + 1
	return StatusSuccess
}

// execCmc implements CMC (0xF5): toggle CF.
func execCmc(s *State, offset uint16, p Prefixes) Status {
	s.Flags ^= FlagCF
	s.IP = offset + 1
	return StatusSuccess
}

// execCli implements CLI (0xFA): clear IF.
func execCli(s *State, offset uint16, p Prefixes) Status {
	s.Flags &^= FlagIF
	s.IP = offset + 1
	return StatusSuccess
}

// execSti implements STI (0xFB): set IF.
func execSti(s *State, offset uint16, p Prefixes) Status {
	s.Flags |= FlagIF
	s.IP = offset + 1
	return StatusSuccess
}

// execCld implements CLD (0xFC): clear DF.
func execCld(s *State, offset uint16, p Prefixes) Status {
	s.Flags &^= FlagDF
	s.IP = offset + 1
	return StatusSuccess
}

// execStd implements STD (0xFD): set DF.
func execStd(s *State, offset uint16, p Prefixes) Status {
	s.Flags |= FlagDF
	s.IP = offset + 1
	return StatusSuccess
}

// execHlt implements HLT (0xF4). This core models HLT by returning success
// and leaving IP past the HLT byte; a host-level halted flag is optional
// and outside this engine's architectural contract (spec §4.4).
func execHlt(s *State, offset uint16, p Prefixes) Status {
	s.IP = offset + 1
	return StatusSuccess
}
