package cpu

import (
	"github.com/ezrec/tama/hal"
)

// getRq reads an r or q register operand.
func (cpu *Cpu) getRq(rq uint8) uint8 {
	switch rq & 0x3 {
	case R_A:
		return cpu.A
	case R_B:
		return cpu.B
	case R_MX:
		return cpu.Read(cpu.X)
	default:
		return cpu.Read(cpu.Y)
	}
}

// setRq writes an r or q register operand.
func (cpu *Cpu) setRq(rq uint8, value uint8) {
	value &= 0xF
	switch rq & 0x3 {
	case R_A:
		cpu.A = value
	case R_B:
		cpu.B = value
	case R_MX:
		cpu.Write(cpu.X, value)
	default:
		cpu.Write(cpu.Y, value)
	}
}

// incIndex increments the offset of an index register, keeping its page.
func incIndex(index uint16) uint16 {
	return (index & 0xF00) | ((index + 1) & 0x0FF)
}

// setNibble replaces the nibble at shift of a 12-bit index register.
func setNibble(index uint16, shift uint, value uint8) uint16 {
	return (index &^ (0xF << shift)) | (uint16(value&0xF) << shift)
}

// nibble returns the nibble at shift of a 12-bit index register.
func nibble(index uint16, shift uint) uint8 {
	return uint8(index>>shift) & 0xF
}

// add returns a + b + carry, decimal adjusted when FLAG_D is set,
// and updates the C and Z flags.
func (cpu *Cpu) add(a, b, carry uint8) (result uint8) {
	tmp := a + b + carry
	if cpu.Flags.Has(FLAG_D) {
		if tmp >= 10 {
			result = (tmp - 10) & 0xF
			cpu.Flags.Set(FLAG_C, true)
		} else {
			result = tmp
			cpu.Flags.Set(FLAG_C, false)
		}
	} else {
		result = tmp & 0xF
		cpu.Flags.Set(FLAG_C, (tmp>>4) != 0)
	}
	cpu.Flags.Set(FLAG_Z, result == 0)
	return
}

// sub returns a - b - borrow, decimal adjusted when FLAG_D is set,
// and updates the C and Z flags. C is always the raw borrow.
func (cpu *Cpu) sub(a, b, borrow uint8) (result uint8) {
	tmp := a - b - borrow
	if cpu.Flags.Has(FLAG_D) && (tmp>>4) != 0 {
		result = (tmp - 6) & 0xF
	} else {
		result = tmp & 0xF
	}
	cpu.Flags.Set(FLAG_C, (tmp>>4) != 0)
	cpu.Flags.Set(FLAG_Z, result == 0)
	return
}

// compare sets C if a < b, and Z if a == b.
func (cpu *Cpu) compare(a, b uint8) {
	cpu.Flags.Set(FLAG_C, a < b)
	cpu.Flags.Set(FLAG_Z, a == b)
}

// logic stores a logical result and updates Z.
func (cpu *Cpu) logic(rq uint8, value uint8) {
	value &= 0xF
	cpu.setRq(rq, value)
	cpu.Flags.Set(FLAG_Z, value == 0)
}

// call saves the return address and enters a subroutine.
func (cpu *Cpu) call(page uint16, step uint8) {
	cpu.pushPc(cpu.Pc + 1)
	cpu.NextPc = makePc(cpu.Pc>>12, page, step)
	cpu.Depth++
}

// ret leaves a subroutine.
func (cpu *Cpu) ret() {
	cpu.NextPc = cpu.popPc()
	cpu.Depth--
}

// jump moves to a step in the page selected by NP.
func (cpu *Cpu) jump(step uint8) {
	cpu.NextPc = uint16(step) | (uint16(cpu.Np) << 8)
}

// execute applies the semantics of a decoded instruction.
func (cpu *Cpu) execute(ins Instruction) {
	arg0 := ins.Arg0
	arg1 := ins.Arg1

	switch ins.Kind {
	case OP_PSET:
		cpu.Np = arg0 & NP_MASK
	case OP_JP:
		cpu.jump(arg0)
	case OP_JP_C:
		if cpu.Flags.Has(FLAG_C) {
			cpu.jump(arg0)
		}
	case OP_JP_NC:
		if !cpu.Flags.Has(FLAG_C) {
			cpu.jump(arg0)
		}
	case OP_JP_Z:
		if cpu.Flags.Has(FLAG_Z) {
			cpu.jump(arg0)
		}
	case OP_JP_NZ:
		if !cpu.Flags.Has(FLAG_Z) {
			cpu.jump(arg0)
		}
	case OP_JPBA:
		cpu.jump(cpu.A | (cpu.B << 4))
	case OP_CALL:
		cpu.call(uint16(cpu.Np&0xF), arg0)
	case OP_CALZ:
		cpu.call(0, arg0)
	case OP_RET:
		cpu.ret()
	case OP_RETS:
		cpu.ret()
		cpu.NextPc = (cpu.NextPc + 1) & PC_MASK
	case OP_RETD:
		cpu.ret()
		cpu.Write(cpu.X, arg0&0xF)
		cpu.Write(incIndex(cpu.X), (arg0>>4)&0xF)
		cpu.X = incIndex(incIndex(cpu.X))
	case OP_NOP5, OP_NOP7, OP_SLP:
	case OP_HALT:
		cpu.Halted = true
		if cpu.Host != nil {
			cpu.Host.Halt()
		}
	case OP_INC_X:
		cpu.X = incIndex(cpu.X)
	case OP_INC_Y:
		cpu.Y = incIndex(cpu.Y)
	case OP_LD_X:
		cpu.X = (cpu.X & 0xF00) | uint16(arg0)
	case OP_LD_Y:
		cpu.Y = (cpu.Y & 0xF00) | uint16(arg0)
	case OP_LD_XP_R:
		cpu.X = setNibble(cpu.X, 8, cpu.getRq(arg0))
	case OP_LD_XH_R:
		cpu.X = setNibble(cpu.X, 4, cpu.getRq(arg0))
	case OP_LD_XL_R:
		cpu.X = setNibble(cpu.X, 0, cpu.getRq(arg0))
	case OP_LD_YP_R:
		cpu.Y = setNibble(cpu.Y, 8, cpu.getRq(arg0))
	case OP_LD_YH_R:
		cpu.Y = setNibble(cpu.Y, 4, cpu.getRq(arg0))
	case OP_LD_YL_R:
		cpu.Y = setNibble(cpu.Y, 0, cpu.getRq(arg0))
	case OP_LD_R_XP:
		cpu.setRq(arg0, nibble(cpu.X, 8))
	case OP_LD_R_XH:
		cpu.setRq(arg0, nibble(cpu.X, 4))
	case OP_LD_R_XL:
		cpu.setRq(arg0, nibble(cpu.X, 0))
	case OP_LD_R_YP:
		cpu.setRq(arg0, nibble(cpu.Y, 8))
	case OP_LD_R_YH:
		cpu.setRq(arg0, nibble(cpu.Y, 4))
	case OP_LD_R_YL:
		cpu.setRq(arg0, nibble(cpu.Y, 0))
	case OP_ADC_XH, OP_ADC_XL, OP_ADC_YH, OP_ADC_YL:
		index, shift := cpu.indexNibble(ins.Kind - OP_ADC_XH)
		tmp := nibble(*index, shift) + arg0 + cpu.Flags.Carry()
		*index = setNibble(*index, shift, tmp)
		cpu.Flags.Set(FLAG_C, (tmp>>4) != 0)
		cpu.Flags.Set(FLAG_Z, (tmp&0xF) == 0)
	case OP_CP_XH, OP_CP_XL, OP_CP_YH, OP_CP_YL:
		index, shift := cpu.indexNibble(ins.Kind - OP_CP_XH)
		cpu.compare(nibble(*index, shift), arg0)
	case OP_LD_R_I:
		cpu.setRq(arg0, arg1)
	case OP_LD_R_Q:
		cpu.setRq(arg0, cpu.getRq(arg1))
	case OP_LD_A_MN:
		cpu.A = cpu.Read(uint16(arg0))
	case OP_LD_B_MN:
		cpu.B = cpu.Read(uint16(arg0))
	case OP_LD_MN_A:
		cpu.Write(uint16(arg0), cpu.A)
	case OP_LD_MN_B:
		cpu.Write(uint16(arg0), cpu.B)
	case OP_LDPX_MX:
		cpu.Write(cpu.X, arg0)
		cpu.X = incIndex(cpu.X)
	case OP_LDPX_R:
		cpu.setRq(arg0, cpu.getRq(arg1))
		cpu.X = incIndex(cpu.X)
	case OP_LDPY_MY:
		cpu.Write(cpu.Y, arg0)
		cpu.Y = incIndex(cpu.Y)
	case OP_LDPY_R:
		cpu.setRq(arg0, cpu.getRq(arg1))
		cpu.Y = incIndex(cpu.Y)
	case OP_LBPX:
		cpu.Write(cpu.X, arg0&0xF)
		cpu.Write(incIndex(cpu.X), (arg0>>4)&0xF)
		cpu.X = incIndex(incIndex(cpu.X))
	case OP_SCF:
		cpu.Flags |= FLAG_C
	case OP_SZF:
		cpu.Flags |= FLAG_Z
	case OP_SDF:
		cpu.Flags |= FLAG_D
	case OP_EI:
		cpu.Flags |= FLAG_I
	case OP_RCF:
		cpu.Flags &^= FLAG_C
	case OP_RZF:
		cpu.Flags &^= FLAG_Z
	case OP_RDF:
		cpu.Flags &^= FLAG_D
	case OP_DI:
		cpu.Flags &^= FLAG_I
	case OP_SET:
		cpu.Flags |= Flags(arg0 & 0xF)
	case OP_RST:
		cpu.Flags &= Flags(arg0 & 0xF)
	case OP_INC_SP:
		cpu.Sp++
	case OP_DEC_SP:
		cpu.Sp--
	case OP_PUSH_R:
		cpu.push(cpu.getRq(arg0))
	case OP_PUSH_XP:
		cpu.push(nibble(cpu.X, 8))
	case OP_PUSH_XH:
		cpu.push(nibble(cpu.X, 4))
	case OP_PUSH_XL:
		cpu.push(nibble(cpu.X, 0))
	case OP_PUSH_YP:
		cpu.push(nibble(cpu.Y, 8))
	case OP_PUSH_YH:
		cpu.push(nibble(cpu.Y, 4))
	case OP_PUSH_YL:
		cpu.push(nibble(cpu.Y, 0))
	case OP_PUSH_F:
		cpu.push(uint8(cpu.Flags))
	case OP_POP_R:
		cpu.setRq(arg0, cpu.pop())
	case OP_POP_XP:
		cpu.X = setNibble(cpu.X, 8, cpu.pop())
	case OP_POP_XH:
		cpu.X = setNibble(cpu.X, 4, cpu.pop())
	case OP_POP_XL:
		cpu.X = setNibble(cpu.X, 0, cpu.pop())
	case OP_POP_YP:
		cpu.Y = setNibble(cpu.Y, 8, cpu.pop())
	case OP_POP_YH:
		cpu.Y = setNibble(cpu.Y, 4, cpu.pop())
	case OP_POP_YL:
		cpu.Y = setNibble(cpu.Y, 0, cpu.pop())
	case OP_POP_F:
		cpu.Flags = Flags(cpu.pop() & 0xF)
	case OP_LD_SPH_R:
		cpu.Sp = (cpu.getRq(arg0) << 4) | (cpu.Sp & 0xF)
	case OP_LD_SPL_R:
		cpu.Sp = (cpu.Sp & 0xF0) | cpu.getRq(arg0)
	case OP_LD_R_SPH:
		cpu.setRq(arg0, cpu.Sp>>4)
	case OP_LD_R_SPL:
		cpu.setRq(arg0, cpu.Sp&0xF)
	case OP_ADD_R_I:
		cpu.setRq(arg0, cpu.add(cpu.getRq(arg0), arg1, 0))
	case OP_ADD_R_Q:
		cpu.setRq(arg0, cpu.add(cpu.getRq(arg0), cpu.getRq(arg1), 0))
	case OP_ADC_R_I:
		cpu.setRq(arg0, cpu.add(cpu.getRq(arg0), arg1, cpu.Flags.Carry()))
	case OP_ADC_R_Q:
		cpu.setRq(arg0, cpu.add(cpu.getRq(arg0), cpu.getRq(arg1), cpu.Flags.Carry()))
	case OP_SUB:
		cpu.setRq(arg0, cpu.sub(cpu.getRq(arg0), cpu.getRq(arg1), 0))
	case OP_SBC_R_I:
		cpu.setRq(arg0, cpu.sub(cpu.getRq(arg0), arg1, cpu.Flags.Carry()))
	case OP_SBC_R_Q:
		cpu.setRq(arg0, cpu.sub(cpu.getRq(arg0), cpu.getRq(arg1), cpu.Flags.Carry()))
	case OP_AND_R_I:
		cpu.logic(arg0, cpu.getRq(arg0)&arg1)
	case OP_AND_R_Q:
		cpu.logic(arg0, cpu.getRq(arg0)&cpu.getRq(arg1))
	case OP_OR_R_I:
		cpu.logic(arg0, cpu.getRq(arg0)|arg1)
	case OP_OR_R_Q:
		cpu.logic(arg0, cpu.getRq(arg0)|cpu.getRq(arg1))
	case OP_NOT:
		cpu.logic(arg0, ^cpu.getRq(arg0))
	case OP_XOR_R_I:
		cpu.logic(arg0, cpu.getRq(arg0)^arg1)
	case OP_XOR_R_Q:
		cpu.logic(arg0, cpu.getRq(arg0)^cpu.getRq(arg1))
	case OP_CP_R_I:
		cpu.compare(cpu.getRq(arg0), arg1)
	case OP_CP_R_Q:
		cpu.compare(cpu.getRq(arg0), cpu.getRq(arg1))
	case OP_FAN_R_I:
		cpu.Flags.Set(FLAG_Z, (cpu.getRq(arg0)&arg1) == 0)
	case OP_FAN_R_Q:
		cpu.Flags.Set(FLAG_Z, (cpu.getRq(arg0)&cpu.getRq(arg1)) == 0)
	case OP_RLC:
		rq := arg0 & 0x3
		value := cpu.getRq(rq)
		tmp := ((value << 1) | cpu.Flags.Carry()) & 0xF
		cpu.Flags.Set(FLAG_C, (value&0x8) != 0)
		cpu.setRq(rq, tmp)
	case OP_RRC:
		value := cpu.getRq(arg0)
		tmp := (value >> 1) | (cpu.Flags.Carry() << 3)
		cpu.Flags.Set(FLAG_C, (value&0x1) != 0)
		cpu.setRq(arg0, tmp)
	case OP_INC_MN:
		tmp := cpu.Read(uint16(arg0)) + 1
		cpu.Write(uint16(arg0), tmp&0xF)
		cpu.Flags.Set(FLAG_C, (tmp>>4) != 0)
		cpu.Flags.Set(FLAG_Z, (tmp&0xF) == 0)
	case OP_DEC_MN:
		tmp := cpu.Read(uint16(arg0)) - 1
		cpu.Write(uint16(arg0), tmp&0xF)
		cpu.Flags.Set(FLAG_C, (tmp>>4) != 0)
		cpu.Flags.Set(FLAG_Z, (tmp&0xF) == 0)
	case OP_ACPX:
		cpu.Write(cpu.X, cpu.add(cpu.Read(cpu.X), cpu.getRq(arg0), cpu.Flags.Carry()))
		cpu.X = incIndex(cpu.X)
	case OP_ACPY:
		cpu.Write(cpu.Y, cpu.add(cpu.Read(cpu.Y), cpu.getRq(arg0), cpu.Flags.Carry()))
		cpu.Y = incIndex(cpu.Y)
	case OP_SCPX:
		cpu.Write(cpu.X, cpu.sub(cpu.Read(cpu.X), cpu.getRq(arg0), cpu.Flags.Carry()))
		cpu.X = incIndex(cpu.X)
	case OP_SCPY:
		cpu.Write(cpu.Y, cpu.sub(cpu.Read(cpu.Y), cpu.getRq(arg0), cpu.Flags.Carry()))
		cpu.Y = incIndex(cpu.Y)
	default:
		cpu.logf(hal.LOG_ERROR, "execute: %v %v", ErrInstructionInvalid, ins.Kind)
	}
}

// indexNibble returns the index register and nibble shift addressed by
// the XH, XL, YH, YL instruction variants, in that order.
func (cpu *Cpu) indexNibble(variant Kind) (index *uint16, shift uint) {
	index = &cpu.X
	if variant >= 2 {
		index = &cpu.Y
	}
	shift = 4
	if (variant & 1) != 0 {
		shift = 0
	}
	return
}
