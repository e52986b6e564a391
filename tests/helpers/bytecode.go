// Package helpers builds shader bytecode and loads golden listings for tests.
package helpers

import (
	"encoding/binary"
	"math"
)

// Register type values as they appear in parameter tokens.
const (
	Temp      = 0
	Input     = 1
	Const     = 2
	Addr      = 3 // vertex shaders
	Texture   = 3 // pixel shaders
	RastOut   = 4
	Output    = 6
	ConstInt  = 7
	ColorOut  = 8
	DepthOut  = 9
	Sampler   = 10
	ConstBool = 14
	Loop      = 15
	Half      = 16
	Misc      = 17
	Label     = 18
	Predicate = 19
)

const (
	FullMask        = 0xF
	IdentitySwizzle = 0xE4
)

// Program accumulates little-endian dwords.
type Program struct {
	words []uint32
}

// VertexShader starts a program with a vs_major_minor version token.
func VertexShader(major, minor uint8) *Program {
	return &Program{words: []uint32{0xFFFE0000 | uint32(major)<<8 | uint32(minor)}}
}

// PixelShader starts a program with a ps_major_minor version token.
func PixelShader(major, minor uint8) *Program {
	return &Program{words: []uint32{0xFFFF0000 | uint32(major)<<8 | uint32(minor)}}
}

// Word appends raw dwords.
func (p *Program) Word(w ...uint32) *Program {
	p.words = append(p.words, w...)
	return p
}

// Op appends an instruction token with the given operand dword count in its length field.
func (p *Program) Op(opcode uint16, length int) *Program {
	return p.Word(InstrToken(opcode, length))
}

// End appends the END token.
func (p *Program) End() *Program {
	return p.Word(0x0000FFFF)
}

// Dst appends a destination token.
func (p *Program) Dst(regType, num int, mask uint32) *Program {
	return p.Word(DstToken(regType, num, mask))
}

// Src appends a source token.
func (p *Program) Src(regType, num int, swizzle uint32) *Program {
	return p.Word(SrcToken(regType, num, swizzle))
}

// Float appends IEEE-754 single precision immediates.
func (p *Program) Float(f ...float32) *Program {
	for _, v := range f {
		p.words = append(p.words, math.Float32bits(v))
	}
	return p
}

// Words returns the dwords appended so far.
func (p *Program) Words() []uint32 {
	return append([]uint32(nil), p.words...)
}

// Bytes returns the little-endian encoding of the program.
func (p *Program) Bytes() []byte {
	buf := make([]byte, 4*len(p.words))
	for i, w := range p.words {
		binary.LittleEndian.PutUint32(buf[4*i:], w)
	}
	return buf
}

// InstrToken encodes an instruction token.
func InstrToken(opcode uint16, length int) uint32 {
	return uint32(opcode) | uint32(length&0xF)<<24
}

// RegBits encodes the split register type and number shared by all parameter tokens.
func RegBits(regType, num int) uint32 {
	t := uint32(regType)
	return (t&0x7)<<28 | (t>>3&0x3)<<11 | uint32(num)&0x7FF | 0x80000000
}

// DstToken encodes a destination token without modifiers.
func DstToken(regType, num int, mask uint32) uint32 {
	return RegBits(regType, num) | (mask&0xF)<<16
}

// SrcToken encodes a source token without a modifier.
func SrcToken(regType, num int, swizzle uint32) uint32 {
	return RegBits(regType, num) | (swizzle&0xFF)<<16
}

// WithRelative sets the relative addressing flag.
func WithRelative(token uint32) uint32 { return token | 1<<13 }

// WithResultMod sets destination result modifier bits (sat=1, pp=2, centroid=4).
func WithResultMod(token, mod uint32) uint32 { return token | (mod&0xF)<<20 }

// WithSrcMod sets the source modifier field.
func WithSrcMod(token, mod uint32) uint32 { return token | (mod&0xF)<<24 }

// Swizzle packs four component selectors (0=x .. 3=w), x slot in the low bits.
func Swizzle(a, b, c, d uint32) uint32 {
	return a | b<<2 | c<<4 | d<<6
}

// DclToken encodes a DCL metadata word for an input, output or texture register.
func DclToken(usage, index uint32) uint32 {
	return usage&0x1F | (index&0xF)<<16 | 0x80000000
}

// SamplerDclToken encodes a DCL metadata word for a sampler register.
func SamplerDclToken(textureType uint32) uint32 {
	return (textureType&0xF)<<27 | 0x80000000
}
