package cpu

// The stack lives in the first page of RAM; SP addresses the last pushed
// nibble and descends on push.

// push stores a nibble below the stack pointer.
func (cpu *Cpu) push(value uint8) {
	cpu.Sp--
	cpu.Write(uint16(cpu.Sp), value)
}

// pop loads the nibble at the stack pointer.
func (cpu *Cpu) pop() (value uint8) {
	value = cpu.Read(uint16(cpu.Sp))
	cpu.Sp++
	return
}

// pushPc saves a return address as three nibbles: page, step high, step low.
func (cpu *Cpu) pushPc(pc uint16) {
	cpu.Write(uint16(cpu.Sp-1), uint8(pc>>8)&0xF)
	cpu.Write(uint16(cpu.Sp-2), uint8(pc>>4)&0xF)
	cpu.Write(uint16(cpu.Sp-3), uint8(pc)&0xF)
	cpu.Sp -= 3
}

// popPc restores a return address saved by pushPc, keeping the current bank.
func (cpu *Cpu) popPc() (pc uint16) {
	pc = uint16(cpu.Read(uint16(cpu.Sp)))
	pc |= uint16(cpu.Read(uint16(cpu.Sp+1))) << 4
	pc |= uint16(cpu.Read(uint16(cpu.Sp+2))) << 8
	pc |= cpu.Pc & PC_BANK
	cpu.Sp += 3
	return
}
