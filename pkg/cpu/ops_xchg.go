package cpu

// execXchg implements XCHG: 0x86/0x87 swap reg<->r/m (byte/word); 0x90-0x97
// swap AX with a GPR (0x90 is NOP, swapping AX with itself) (spec §4.4).
func execXchg(s *State, offset uint16, p Prefixes) Status {
	op := s.ReadByte(s.CS, offset)

	switch op {
	case 0x86:
		m := parseModRM(s, s.CS, offset+1, p)
		a, b := getRMByte(s, m), getRegByte(s, m)
		setRMByte(s, m, b)
		setRegByte(s, m, a)
		s.IP = offset + 2 + m.Size
	case 0x87:
		m := parseModRM(s, s.CS, offset+1, p)
		a, b := getRMWord(s, m), getRegWord(s, m)
		setRMWord(s, m, b)
		setRegWord(s, m, a)
		s.IP = offset + 2 + m.Size
	default: // 0x90-0x97
		reg := wordReg(op & 0b111)
		a, b := s.AX, s.GetWord(reg)
		s.AX = b
		s.SetWord(reg, a)
		s.IP = offset + 1
	}
	return StatusSuccess
}
