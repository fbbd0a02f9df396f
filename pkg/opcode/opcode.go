// Package opcode provides static metadata about the 8086 instruction encoding
// space: mnemonic names, categories, and whether pkg/cpu implements a given
// opcode byte. It does not execute anything; pkg/cpu.Step owns dispatch.
package opcode

// Opcode identifies one of the 256 first-byte encodings of the 8086
// instruction set.
type Opcode uint8

// Category groups opcodes by instruction family, independent of whether this
// core implements them.
type Category int

const (
	CategoryUndefined Category = iota
	CategoryData
	CategoryArithmetic
	CategoryControl
	CategoryFlags
	CategoryString
	CategoryIO
	CategoryStack
	CategoryGroup // secondary ModR/M-reg dispatch (0x80-0x83, 0xF6, 0xF7, 0xFE, 0xFF)
)

func (c Category) String() string {
	switch c {
	case CategoryData:
		return "data"
	case CategoryArithmetic:
		return "arithmetic"
	case CategoryControl:
		return "control"
	case CategoryFlags:
		return "flags"
	case CategoryString:
		return "string"
	case CategoryIO:
		return "io"
	case CategoryStack:
		return "stack"
	case CategoryGroup:
		return "group"
	default:
		return "undefined"
	}
}

// Info holds static metadata for one opcode byte.
type Info struct {
	Mnemonic    string
	Category    Category
	Implemented bool // false for either unimplemented-but-valid or undefined
	HasModRM    bool
}

// Catalog maps every opcode byte to its Info. Entries not present in the map
// are genuinely undefined 8086 encodings (e.g. 0x0F, 0x60-0x6F, 0xD6, 0xF1).
var Catalog = buildCatalog()

// Lookup returns the catalog entry for op and whether one exists.
func Lookup(op Opcode) (Info, bool) {
	info, ok := Catalog[op]
	return info, ok
}

// Implemented reports whether pkg/cpu implements op's handler.
func Implemented(op Opcode) bool {
	info, ok := Catalog[op]
	return ok && info.Implemented
}

func buildCatalog() map[Opcode]Info {
	c := make(map[Opcode]Info, 256)

	entry := func(op byte, mnemonic string, cat Category, hasModRM, implemented bool) {
		c[Opcode(op)] = Info{Mnemonic: mnemonic, Category: cat, HasModRM: hasModRM, Implemented: implemented}
	}

	// MOV
	entry(0x88, "MOV r/m8, r8", CategoryData, true, true)
	entry(0x89, "MOV r/m16, r16", CategoryData, true, true)
	entry(0x8A, "MOV r8, r/m8", CategoryData, true, true)
	entry(0x8B, "MOV r16, r/m16", CategoryData, true, true)
	entry(0x8C, "MOV r/m16, sreg", CategoryData, true, true)
	entry(0x8E, "MOV sreg, r/m16", CategoryData, true, true)
	entry(0xA0, "MOV AL, [imm16]", CategoryData, false, true)
	entry(0xA1, "MOV AX, [imm16]", CategoryData, false, true)
	entry(0xA2, "MOV [imm16], AL", CategoryData, false, true)
	entry(0xA3, "MOV [imm16], AX", CategoryData, false, true)
	for i, name := range []string{"AL", "CL", "DL", "BL", "AH", "CH", "DH", "BH"} {
		entry(0xB0+byte(i), "MOV "+name+", imm8", CategoryData, false, true)
	}
	for i, name := range []string{"AX", "CX", "DX", "BX", "SP", "BP", "SI", "DI"} {
		entry(0xB8+byte(i), "MOV "+name+", imm16", CategoryData, false, true)
	}
	entry(0xC6, "MOV r/m8, imm8", CategoryData, true, true)
	entry(0xC7, "MOV r/m16, imm16", CategoryData, true, true)

	// XCHG
	entry(0x86, "XCHG r8, r/m8", CategoryData, true, true)
	entry(0x87, "XCHG r16, r/m16", CategoryData, true, true)
	for i, name := range []string{"AX", "CX", "DX", "BX", "SP", "BP", "SI", "DI"} {
		entry(0x90+byte(i), "XCHG AX, "+name, CategoryData, false, true)
	}

	// ADD/SUB/CMP direct
	for i, suffix := range []string{"r/m8, r8", "r/m16, r16", "r8, r/m8", "r16, r/m16", "AL, imm8", "AX, imm16"} {
		entry(0x00+byte(i), "ADD "+suffix, CategoryArithmetic, i < 4, true)
		entry(0x28+byte(i), "SUB "+suffix, CategoryArithmetic, i < 4, true)
		entry(0x38+byte(i), "CMP "+suffix, CategoryArithmetic, i < 4, true)
	}
	// Recognized but unimplemented direct ALU families sharing the same layout.
	for base, mnemonic := range map[byte]string{0x08: "OR", 0x10: "ADC", 0x18: "SBB", 0x20: "AND", 0x30: "XOR"} {
		for i, suffix := range []string{"r/m8, r8", "r/m16, r16", "r8, r/m8", "r16, r/m16", "AL, imm8", "AX, imm16"} {
			entry(base+byte(i), mnemonic+" "+suffix, CategoryArithmetic, i < 4, false)
		}
	}

	// INC/DEC register forms
	for i, name := range []string{"AX", "CX", "DX", "BX", "SP", "BP", "SI", "DI"} {
		entry(0x40+byte(i), "INC "+name, CategoryArithmetic, false, true)
		entry(0x48+byte(i), "DEC "+name, CategoryArithmetic, false, true)
	}

	// PUSH/POP register forms (unimplemented)
	for i, name := range []string{"AX", "CX", "DX", "BX", "SP", "BP", "SI", "DI"} {
		entry(0x50+byte(i), "PUSH "+name, CategoryStack, false, false)
		entry(0x58+byte(i), "POP "+name, CategoryStack, false, false)
	}

	// Immediate group (secondary dispatch on ModR/M reg)
	entry(0x80, "GRP1 r/m8, imm8", CategoryGroup, true, true)
	entry(0x81, "GRP1 r/m16, imm16", CategoryGroup, true, true)
	entry(0x82, "GRP1 r/m8, imm8 (alias)", CategoryGroup, true, true)
	entry(0x83, "GRP1 r/m16, imm8", CategoryGroup, true, true)

	// Group 2 (INC/DEC/CALL/JMP/PUSH indirect)
	entry(0xFE, "GRP2 r/m8", CategoryGroup, true, true)
	entry(0xFF, "GRP2 r/m16", CategoryGroup, true, true)

	// Control transfer
	entry(0x9A, "CALL far ptr16:16", CategoryControl, false, true)
	entry(0xE8, "CALL rel16", CategoryControl, false, true)
	entry(0xC2, "RET imm16", CategoryControl, false, true)
	entry(0xC3, "RET", CategoryControl, false, true)
	entry(0xCA, "RETF imm16", CategoryControl, false, true)
	entry(0xCB, "RETF", CategoryControl, false, true)
	entry(0xE9, "JMP rel16", CategoryControl, false, true)
	entry(0xEA, "JMP far ptr16:16", CategoryControl, false, true)
	entry(0xEB, "JMP rel8", CategoryControl, false, true)
	for i, name := range []string{"JO", "JNO", "JB", "JAE", "JE", "JNE", "JBE", "JA",
		"JS", "JNS", "JP", "JNP", "JL", "JGE", "JLE", "JG"} {
		entry(0x70+byte(i), name+" rel8", CategoryControl, false, true)
	}
	entry(0xE2, "LOOP rel8", CategoryControl, false, false)
	entry(0xE1, "LOOPE rel8", CategoryControl, false, false)
	entry(0xE0, "LOOPNE rel8", CategoryControl, false, false)
	entry(0xE3, "JCXZ rel8", CategoryControl, false, false)
	entry(0xCC, "INT 3", CategoryControl, false, false)
	entry(0xCD, "INT imm8", CategoryControl, false, false)
	entry(0xCE, "INTO", CategoryControl, false, false)
	entry(0xCF, "IRET", CategoryControl, false, false)

	// Flags/control singletons
	entry(0xF8, "CLC", CategoryFlags, false, true)
	entry(0xF9, "STC", CategoryFlags, false, true)
	entry(0xF5, "CMC", CategoryFlags, false, true)
	entry(0xFA, "CLI", CategoryFlags, false, true)
	entry(0xFB, "STI", CategoryFlags, false, true)
	entry(0xFC, "CLD", CategoryFlags, false, true)
	entry(0xFD, "STD", CategoryFlags, false, true)
	entry(0xF4, "HLT", CategoryControl, false, true)
	entry(0x9E, "SAHF", CategoryFlags, false, false)
	entry(0x9F, "LAHF", CategoryFlags, false, false)
	entry(0x9C, "PUSHF", CategoryFlags, false, false)
	entry(0x9D, "POPF", CategoryFlags, false, false)

	// String operations (unimplemented)
	for op, mnemonic := range map[byte]string{
		0xA4: "MOVSB", 0xA5: "MOVSW", 0xA6: "CMPSB", 0xA7: "CMPSW",
		0xAA: "STOSB", 0xAB: "STOSW", 0xAC: "LODSB", 0xAD: "LODSW",
		0xAE: "SCASB", 0xAF: "SCASW",
	} {
		entry(op, mnemonic, CategoryString, false, false)
	}
	entry(0xA8, "TEST AL, imm8", CategoryArithmetic, false, false)
	entry(0xA9, "TEST AX, imm16", CategoryArithmetic, false, false)
	entry(0xF2, "REPNZ", CategoryString, false, false)
	entry(0xF3, "REPZ", CategoryString, false, false)

	// Shifts/rotates, MUL/DIV/NEG/NOT group, LEA, LES/LDS, BCD, x87, IN/OUT
	for _, op := range []byte{0xD0, 0xD1, 0xD2, 0xD3} {
		entry(op, "GRP2 shift/rotate", CategoryArithmetic, true, false)
	}
	entry(0xF6, "GRP3 r/m8", CategoryGroup, true, false)
	entry(0xF7, "GRP3 r/m16", CategoryGroup, true, false)
	entry(0x8D, "LEA r16, m", CategoryData, true, false)
	entry(0x8F, "POP r/m16", CategoryStack, true, false)
	entry(0xC4, "LES r16, m", CategoryData, true, false)
	entry(0xC5, "LDS r16, m", CategoryData, true, false)
	entry(0x27, "DAA", CategoryArithmetic, false, false)
	entry(0x2F, "DAS", CategoryArithmetic, false, false)
	entry(0x37, "AAA", CategoryArithmetic, false, false)
	entry(0x3F, "AAS", CategoryArithmetic, false, false)
	entry(0xD4, "AAM imm8", CategoryArithmetic, false, false)
	entry(0xD5, "AAD imm8", CategoryArithmetic, false, false)
	entry(0xD7, "XLAT", CategoryData, false, false)
	entry(0x98, "CBW", CategoryArithmetic, false, false)
	entry(0x99, "CWD", CategoryArithmetic, false, false)
	entry(0x9B, "WAIT", CategoryControl, false, false)
	entry(0x84, "TEST r/m8, r8", CategoryArithmetic, true, false)
	entry(0x85, "TEST r/m16, r16", CategoryArithmetic, true, false)
	for op := byte(0xD8); op <= 0xDF; op++ {
		entry(op, "ESC (x87)", CategoryUndefined, true, false)
	}
	for _, op := range []byte{0xE4, 0xE5, 0xE6, 0xE7, 0xEC, 0xED, 0xEE, 0xEF} {
		entry(op, "IN/OUT", CategoryIO, false, false)
	}
	entry(0x26, "ES:", CategoryUndefined, false, false)
	entry(0x2E, "CS:", CategoryUndefined, false, false)
	entry(0x36, "SS:", CategoryUndefined, false, false)
	entry(0x3E, "DS:", CategoryUndefined, false, false)
	entry(0xF0, "LOCK", CategoryUndefined, false, false)
	entry(0x06, "PUSH ES", CategoryStack, false, false)
	entry(0x07, "POP ES", CategoryStack, false, false)
	entry(0x0E, "PUSH CS", CategoryStack, false, false)
	entry(0x16, "PUSH SS", CategoryStack, false, false)
	entry(0x17, "POP SS", CategoryStack, false, false)
	entry(0x1E, "PUSH DS", CategoryStack, false, false)
	entry(0x1F, "POP DS", CategoryStack, false, false)

	return c
}
