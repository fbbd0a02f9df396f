package cpu

// handler executes one instruction at CS:offset (offset already past any
// prefix bytes, i.e. it points at the opcode byte) and advances IP to the
// following instruction. Handlers — not the dispatcher — own IP (spec §4.5).
type handler func(s *State, offset uint16, p Prefixes) Status

// opcodeTable maps a non-prefix, non-group opcode byte directly to its
// handler. nil entries are undefined opcodes (spec §4.5); opcodes handled
// by the immediate-group or group-2 secondary dispatch are also nil here
// and are resolved by groupImmediate/groupTwo in Step.
var opcodeTable = buildOpcodeTable()

func buildOpcodeTable() [256]handler {
	var t [256]handler

	// MOV
	for _, op := range []byte{0x88, 0x89, 0x8A, 0x8B, 0x8C, 0x8E,
		0xA0, 0xA1, 0xA2, 0xA3,
		0xB0, 0xB1, 0xB2, 0xB3, 0xB4, 0xB5, 0xB6, 0xB7,
		0xB8, 0xB9, 0xBA, 0xBB, 0xBC, 0xBD, 0xBE, 0xBF,
		0xC6, 0xC7} {
		t[op] = execMov
	}

	// XCHG
	for _, op := range []byte{0x86, 0x87, 0x90, 0x91, 0x92, 0x93, 0x94, 0x95, 0x96, 0x97} {
		t[op] = execXchg
	}

	// ADD/SUB/CMP direct forms
	for _, op := range []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05} {
		t[op] = execAdd
	}
	for _, op := range []byte{0x28, 0x29, 0x2A, 0x2B, 0x2C, 0x2D} {
		t[op] = execSub
	}
	for _, op := range []byte{0x38, 0x39, 0x3A, 0x3B, 0x3C, 0x3D} {
		t[op] = execCmp
	}

	// INC/DEC register forms
	for op := byte(0x40); op <= 0x47; op++ {
		t[op] = execIncReg
	}
	for op := byte(0x48); op <= 0x4F; op++ {
		t[op] = execDecReg
	}

	// CALL
	t[0x9A] = execCallFar
	t[0xE8] = execCallNear

	// RET
	t[0xC2] = execRetNear
	t[0xC3] = execRetNear
	t[0xCA] = execRetFar
	t[0xCB] = execRetFar

	// JMP
	t[0xE9] = execJmpNear
	t[0xEA] = execJmpFar
	t[0xEB] = execJmpShort

	// Jcc
	for op := byte(0x70); op <= 0x7F; op++ {
		t[op] = execJcc
	}

	// Flag/control singletons
	t[0xF8] = execClc
	t[0xF5] = execCmc
	t[0xF9] = execStc
	t[0xFA] = execCli
	t[0xFB] = execSti
	t[0xFC] = execCld
	t[0xFD] = execStd
	t[0xF4] = execHlt

	// Recognized-but-unimplemented encodings (spec §1's explicit
	// out-of-scope list: string ops, shifts/rotates, logical ops, MUL/DIV,
	// BCD adjusts, LEA, LES/LDS, PUSH/POP family, LOOP, INT/IRET, IN/OUT,
	// x87 escapes, plus segment-register PUSH/POP and the ADC/SBB/AND/OR/
	// XOR/TEST direct forms this core does not handle). Grounded on
	// original_source/src/decode.c's equivalent case list.
	for _, op := range []byte{
		0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E,
		0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17,
		0x18, 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E, 0x1F,
		0x20, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27,
		0x2E, 0x2F,
		0x30, 0x31, 0x32, 0x33, 0x34, 0x35, 0x36, 0x37,
		0x3E, 0x3F,
		0x50, 0x51, 0x52, 0x53, 0x54, 0x55, 0x56, 0x57,
		0x58, 0x59, 0x5A, 0x5B, 0x5C, 0x5D, 0x5E, 0x5F,
		0x84, 0x85, 0x8D, 0x8F,
		0x98, 0x99, 0x9B, 0x9C, 0x9D, 0x9E, 0x9F,
		0xA4, 0xA5, 0xA6, 0xA7, 0xA8, 0xA9, 0xAA, 0xAB, 0xAC, 0xAD, 0xAE, 0xAF,
		0xC4, 0xC5,
		0xCC, 0xCD, 0xCE, 0xCF,
		0xD0, 0xD1, 0xD2, 0xD3,
		0xD4, 0xD5, 0xD7,
		0xD8, 0xD9, 0xDA, 0xDB, 0xDC, 0xDD, 0xDE, 0xDF,
		0xE0, 0xE1, 0xE2, 0xE3, 0xE4, 0xE5, 0xE6, 0xE7,
		0xEC, 0xED, 0xEE, 0xEF,
		0xF0, 0xF2, 0xF3,
		0xF6, 0xF7,
	} {
		t[op] = execUnimplemented
	}

	return t
}

// execUnimplemented is the handler for encodings this core recognizes as
// valid 8086 opcodes but does not implement (spec §1). Bytes with no entry
// at all in opcodeTable (e.g. 0x0F, 0x60-0x6F, 0xD6, 0xF1) are not valid
// baseline 8086 encodings and fall through to StatusUndefinedOpcode in Step.
func execUnimplemented(s *State, offset uint16, p Prefixes) Status {
	return StatusUnimplementedOpcode
}

// groupImmediate dispatches 0x80/0x81/0x82/0x83 on the ModR/M reg field
// (spec §4.4/§4.5). Sub-opcodes this core does not implement return
// StatusUnimplementedOpcode without cascading into a later case (spec §9's
// "immediate-group dispatch fallthrough" open question, resolved against
// the original source's missing-break bug).
func groupImmediate(s *State, offset uint16, p Prefixes) Status {
	modByte := s.ReadByte(s.CS, offset+1)
	reg := modByte >> 3 & 0b111
	switch reg {
	case 0b000:
		return execAdd(s, offset, p)
	case 0b101:
		return execSub(s, offset, p)
	case 0b111:
		return execCmp(s, offset, p)
	case 0b001, 0b010, 0b011, 0b100, 0b110: // OR, ADC, SBB, AND, XOR
		return StatusUnimplementedOpcode
	default:
		return StatusUndefinedOpcode
	}
}

// groupTwo dispatches 0xFE/0xFF on the ModR/M reg field (spec §4.4/§4.5).
// 0xFE only defines INC (/0) and DEC (/1); every other sub-opcode is an
// undefined byte-width encoding. 0xFF additionally defines CALL indirect
// (/2,/3) and JMP indirect (/4,/5), both unimplemented per spec §4.4, and
// PUSH (/6), unimplemented per spec §1's out-of-scope list; /7 is undefined.
func groupTwo(opcode byte) handler {
	return func(s *State, offset uint16, p Prefixes) Status {
		modByte := s.ReadByte(s.CS, offset+1)
		reg := modByte >> 3 & 0b111
		switch reg {
		case 0b000:
			return execIncRM(s, offset, p)
		case 0b001:
			return execDecRM(s, offset, p)
		}
		if opcode == 0xFE {
			return StatusUndefinedOpcode
		}
		switch reg {
		case 0b010, 0b011, 0b100, 0b101, 0b110:
			return StatusUnimplementedOpcode
		default:
			return StatusUndefinedOpcode
		}
	}
}

// Step performs exactly one decode+execute cycle and returns its status
// (spec §2/§5/§6). It fetches at CS:IP, peels any prefix bytes, selects a
// handler (performing secondary ModR/M-reg dispatch for the immediate and
// group-2 opcodes), and hands off. Handlers advance IP themselves; Step
// never writes IP, so after a failed Step IP still points at the first byte
// of the instruction, prefix bytes included.
func Step(s *State) Status {
	offset := s.IP
	prefixes, opOffset := parsePrefixes(s, s.CS, offset)
	opcode := s.ReadByte(s.CS, opOffset)

	switch opcode {
	case 0x80, 0x81, 0x82, 0x83:
		return groupImmediate(s, opOffset, prefixes)
	case 0xFE:
		return groupTwo(0xFE)(s, opOffset, prefixes)
	case 0xFF:
		return groupTwo(0xFF)(s, opOffset, prefixes)
	}

	h := opcodeTable[opcode]
	if h == nil {
		return StatusUndefinedOpcode
	}
	return h(s, opOffset, prefixes)
}
