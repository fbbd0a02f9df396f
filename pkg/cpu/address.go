package cpu

// Linear translates a segment:offset pair into a 20-bit linear address,
// wrapping modulo 2^20 (spec §4.1). Both segment and offset are taken
// modulo 2^16 first, matching the 8086's real-mode addressing.
func Linear(segment, offset uint16) uint32 {
	return (uint32(segment)<<4 + uint32(offset)) & 0xFFFFF
}

// ReadByte reads one byte at segment:offset.
func (s *State) ReadByte(segment, offset uint16) uint8 {
	return s.Memory[Linear(segment, offset)]
}

// WriteByte writes one byte at segment:offset. Memory writes never escape
// the 20-bit space (invariant I4): Linear already reduces modulo 2^20.
func (s *State) WriteByte(segment, offset uint16, v uint8) {
	s.Memory[Linear(segment, offset)] = v
}

// ReadWord reads a little-endian word at segment:offset. The high byte's
// address is offset+1 taken modulo 2^16 before segmentation, so a word
// access whose low byte sits at the top of a segment wraps its high byte
// back to offset 0 of the same segment (spec §4.1).
func (s *State) ReadWord(segment, offset uint16) uint16 {
	lo := s.ReadByte(segment, offset)
	hi := s.ReadByte(segment, offset+1)
	return uint16(lo) | uint16(hi)<<8
}

// WriteWord writes a little-endian word at segment:offset: low byte at the
// address, high byte at address+1.
func (s *State) WriteWord(segment, offset uint16, v uint16) {
	s.WriteByte(segment, offset, uint8(v))
	s.WriteByte(segment, offset+1, uint8(v>>8))
}

// InByte returns the last value recorded for port, wrapped modulo 2^16.
func (s *State) InByte(port uint16) uint8 {
	return s.IO.In[port]
}

// OutByte records v as the last value written to port, wrapped modulo 2^16.
func (s *State) OutByte(port uint16, v uint8) {
	s.IO.Out[port] = v
}

// InWord and OutWord pair two adjacent ports little-endian, the same way
// ReadWord/WriteWord pair two adjacent memory bytes, with the port number
// wrapping modulo 2^16 (spec §4.1).
func (s *State) InWord(port uint16) uint16 {
	lo := s.InByte(port)
	hi := s.InByte(port + 1)
	return uint16(lo) | uint16(hi)<<8
}

func (s *State) OutWord(port uint16, v uint16) {
	s.OutByte(port, uint8(v))
	s.OutByte(port+1, uint8(v>>8))
}
