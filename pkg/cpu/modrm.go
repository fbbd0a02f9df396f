package cpu

// modMode is the two-bit mod field of a ModR/M byte.
type modMode uint8

const (
	modMem      modMode = 0b00
	modMemDisp8 modMode = 0b01
	modMemDisp  modMode = 0b10
	modReg      modMode = 0b11
)

// memMode names the rm-field base-expression for memory operands
// (mod != 11), per spec §4.2's addressing table.
type memMode uint8

const (
	memBxSi memMode = 0b000
	memBxDi memMode = 0b001
	memBpSi memMode = 0b010
	memBpDi memMode = 0b011
	memSi   memMode = 0b100
	memDi   memMode = 0b101
	memBp   memMode = 0b110 // direct address when mod==00
	memBx   memMode = 0b111
)

// ModRM is the resolved descriptor produced by parsing a ModR/M byte plus
// any displacement (spec §4.2).
type ModRM struct {
	Mod   modMode
	Reg   uint8 // raw 3-bit reg field; interpreted by the caller's width/kind
	RM    uint8 // raw 3-bit rm field
	Disp  int16
	IsReg bool   // mod == 11: RM names a register, not memory
	Seg   segReg // effective segment for a memory operand (ignored if IsReg)

	// Address is the 16-bit effective offset, pre-segmentation.
	Address uint16

	// Size is the number of bytes consumed beyond the ModR/M byte itself:
	// displacement width, or 2 for the direct-address special case.
	Size uint16
}

// parseModRM reads the ModR/M byte at segment:offset (plus any trailing
// displacement) and resolves the effective address using prefixes'
// segment override, defaulting per spec §4.2: DS for every base expression
// except those involving BP (110 non-direct, 010, 011), which default to
// SS. The resolver never performs the memory access itself.
func parseModRM(s *State, segment, offset uint16, prefixes Prefixes) ModRM {
	b := s.ReadByte(segment, offset)
	m := ModRM{
		Mod: modMode(b >> 6 & 0b11),
		Reg: b >> 3 & 0b111,
		RM:  b & 0b111,
	}

	if m.Mod == modReg {
		m.IsReg = true
		m.Size = 0
		return m
	}

	mm := memMode(m.RM)

	var base uint16
	defaultSeg := segDS
	switch mm {
	case memBxSi:
		base = s.BX + s.SI
	case memBxDi:
		base = s.BX + s.DI
	case memBpSi:
		base = s.BP + s.SI
		defaultSeg = segSS
	case memBpDi:
		base = s.BP + s.DI
		defaultSeg = segSS
	case memSi:
		base = s.SI
	case memDi:
		base = s.DI
	case memBp:
		if m.Mod == modMem {
			// Direct address: no base, 16-bit displacement follows, DS default.
			disp := s.ReadWord(segment, offset+1)
			m.Disp = 0
			m.Address = disp
			m.Size = 2
			m.Seg = prefixes.segmentOrDefault(segDS)
			return m
		}
		base = s.BP
		defaultSeg = segSS
	case memBx:
		base = s.BX
	}

	switch m.Mod {
	case modMem:
		m.Disp = 0
		m.Size = 0
	case modMemDisp8:
		d := int8(s.ReadByte(segment, offset+1))
		m.Disp = int16(d)
		m.Size = 1
	case modMemDisp:
		m.Disp = int16(s.ReadWord(segment, offset+1))
		m.Size = 2
	}

	m.Address = base + uint16(m.Disp)
	m.Seg = prefixes.segmentOrDefault(defaultSeg)
	return m
}

// --- byte operand access -----------------------------------------------

// getRegByte reads the register named by m.Reg interpreted as a byte
// register (AL..BH per spec §4.2).
func getRegByte(s *State, m ModRM) uint8 {
	return s.GetByte(byteReg(m.Reg))
}

func setRegByte(s *State, m ModRM, v uint8) {
	s.SetByte(byteReg(m.Reg), v)
}

// getRMByte reads the r/m operand as a byte: register-style when
// mod==11, memory-style (through the resolved segment:address) otherwise.
func getRMByte(s *State, m ModRM) uint8 {
	if m.IsReg {
		return s.GetByte(byteReg(m.RM))
	}
	return s.ReadByte(s.GetSegment(m.Seg), m.Address)
}

func setRMByte(s *State, m ModRM, v uint8) {
	if m.IsReg {
		s.SetByte(byteReg(m.RM), v)
		return
	}
	s.WriteByte(s.GetSegment(m.Seg), m.Address, v)
}

// --- word operand access -------------------------------------------------

func getRegWord(s *State, m ModRM) uint16 {
	return s.GetWord(wordReg(m.Reg))
}

func setRegWord(s *State, m ModRM, v uint16) {
	s.SetWord(wordReg(m.Reg), v)
}

func getRMWord(s *State, m ModRM) uint16 {
	if m.IsReg {
		return s.GetWord(wordReg(m.RM))
	}
	return s.ReadWord(s.GetSegment(m.Seg), m.Address)
}

func setRMWord(s *State, m ModRM, v uint16) {
	if m.IsReg {
		s.SetWord(wordReg(m.RM), v)
		return
	}
	s.WriteWord(s.GetSegment(m.Seg), m.Address, v)
}

// --- segment register access ---------------------------------------------

// getSegment reads the segment register selected by m.Reg (ES,CS,SS,DS for
// 00..11). ok is false if m.Reg names an encoding outside the legal range
// (spec §4.2: "Any operation that would select an encoding outside its
// legal range returns an invalid-operand failure without mutating state").
func getSegment(s *State, m ModRM) (v uint16, ok bool) {
	if m.Reg > 0b011 {
		return 0, false
	}
	return s.GetSegment(segReg(m.Reg)), true
}

// setSegment writes the segment register selected by m.Reg. Rejecting
// writes to CS is the MOV handler's responsibility (spec §4.4), not this
// resolver's: the resolver only validates the encoding range.
func setSegment(s *State, m ModRM, v uint16) bool {
	if m.Reg > 0b011 {
		return false
	}
	s.SetSegment(segReg(m.Reg), v)
	return true
}
