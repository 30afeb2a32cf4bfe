package vm

import (
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/arch"
)

// execute applies instr to the machine. The program counter already points
// past instr. All range checks happen before any state is written.
func (m *Machine) execute(instr *arch.Instruction) error {
	r := &m.regs
	v := r.V[:]
	x, y := instr.X, instr.Y

	switch instr.Op {
	case arch.Clear:
		m.display.Clear()
	case arch.Return:
		addr, err := r.pop()
		if err != nil {
			return err
		}
		r.PC = addr
	case arch.Jump:
		r.PC = instr.NNN
	case arch.Call:
		if err := r.push(r.PC); err != nil {
			return err
		}
		r.PC = instr.NNN

	case arch.SkipEqualByte:
		if v[x] == instr.KK {
			r.PC += 2
		}
	case arch.SkipNotEqualByte:
		if v[x] != instr.KK {
			r.PC += 2
		}
	case arch.SkipEqualRegister:
		if v[x] == v[y] {
			r.PC += 2
		}
	case arch.SkipNotEqualRegister:
		if v[x] != v[y] {
			r.PC += 2
		}

	case arch.LoadByte:
		v[x] = instr.KK
	case arch.AddByte:
		v[x] += instr.KK
	case arch.LoadRegister:
		v[x] = v[y]
	case arch.Or:
		v[x] |= v[y]
	case arch.And:
		v[x] &= v[y]
	case arch.Xor:
		v[x] ^= v[y]

	// The flag is written before the result, so with x == F the result wins.
	case arch.AddRegister:
		sum := uint16(v[x]) + uint16(v[y])
		r.setFlag(sum > 0xff)
		v[x] = uint8(sum)
	case arch.Sub:
		vx, vy := v[x], v[y]
		r.setFlag(vx > vy)
		v[x] = vx - vy
	case arch.SubFrom:
		vx, vy := v[x], v[y]
		r.setFlag(vy > vx)
		v[x] = vy - vx
	case arch.ShiftRight:
		vx := v[x]
		r.setFlag(vx&0x01 != 0)
		v[x] = vx >> 1
	case arch.ShiftLeft:
		vx := v[x]
		r.setFlag(vx&0x80 != 0)
		v[x] = vx << 1

	case arch.SetIndex:
		r.I = instr.NNN
	case arch.JumpOffset:
		r.PC = instr.NNN + uint16(v[0])
	case arch.Random:
		v[x] = uint8(m.rng.Intn(0x100)) & instr.KK
	case arch.DisplaySprite:
		rows, err := m.memory.slice(int(r.I), int(instr.N))
		if err != nil {
			return err
		}
		r.setFlag(m.display.draw(int(v[x]), int(v[y]), rows))

	case arch.SkipIfKeyPressed:
		if v[x] >= KeyCount {
			return errors.Wrapf(ErrKeyOutOfRange, "key %02x", v[x])
		}
		if m.keypad.Pressed(int(v[x])) {
			r.PC += 2
		}
	case arch.SkipIfNotKeyPressed:
		if v[x] >= KeyCount {
			return errors.Wrapf(ErrKeyOutOfRange, "key %02x", v[x])
		}
		if !m.keypad.Pressed(int(v[x])) {
			r.PC += 2
		}
	case arch.WaitKeyPress:
		key, ok := m.keypad.First()
		if !ok {
			r.PC -= 2
			break
		}
		v[x] = uint8(key)

	case arch.LoadDelayTimer:
		v[x] = m.delay
	case arch.SetDelayTimer:
		m.delay = v[x]
	case arch.SetSoundTimer:
		m.sound = v[x]

	case arch.AddIndex:
		r.I += uint16(v[x])
	case arch.LoadFontIndex:
		r.I = FontAddress + uint16(v[x]&0xf)*FontGlyphSize
	case arch.BinaryCodedDecimal:
		n := v[x]
		return m.memory.Write(int(r.I), []byte{n / 100, n / 10 % 10, n % 10})
	case arch.StoreRegisters:
		return m.memory.Write(int(r.I), v[:x+1])
	case arch.ReadRegisters:
		return m.memory.Read(int(r.I), v[:x+1])

	default:
		return &arch.DecodeError{Opcode: instr.Opcode}
	}

	return nil
}
