// Package shader decodes whole instructions from the bytecode stream.
//
// Each opcode's operand layout comes from its d3d.Shape: an optional declaration word, an
// optional destination, up to four sources and an optional immediate payload. One Instruction
// type covers every opcode; the renderer switches on the opcode where the text differs.
package shader

import (
	"math"

	"sm3dis/internal/common"
	"sm3dis/internal/d3d"
	"sm3dis/internal/memacc"
	"sm3dis/internal/tokens"
)

// Declaration is the metadata word of a DCL instruction.
type Declaration struct {
	Raw         uint32
	HasUsage    bool // destination is an input, output or texture register
	Usage       d3d.DeclUsage
	UsageIndex  uint8
	HasSampler  bool // destination is a sampler register
	TextureType d3d.TextureType
}

// Instruction is one decoded instruction.
type Instruction struct {
	Offset int
	Token  tokens.InstructionToken
	Desc   d3d.Descriptor

	Dst *tokens.DstParam
	Src []*tokens.SrcParam

	Floats [4]float32 // def
	Ints   [4]int32   // defi
	Bool   uint32     // defb
	Decl   Declaration

	// consumed is the number of bytes the operand decoders actually read.
	consumed int
}

// Size is the number of bytes the stream advances past this instruction.
func (i *Instruction) Size() int {
	return i.Token.Size()
}

// Consumed is the number of bytes read while decoding, instruction token included.
// It can differ from Size for opcodes whose layout is not modelled.
func (i *Instruction) Consumed() int {
	return i.consumed
}

// Mnemonic returns the registry mnemonic without modifiers.
func (i *Instruction) Mnemonic() string {
	return i.Desc.Mnemonic
}

// Decode reads the instruction starting at offset. Any operand failure aborts the decode.
func Decode(acc *memacc.BufferAccessor, offset int, kind d3d.ShaderKind) (*Instruction, error) {
	tok, desc, err := tokens.ReadInstructionToken(acc, offset)
	if err != nil {
		return nil, err
	}
	inst := &Instruction{Offset: offset, Token: tok, Desc: desc}
	shape := desc.Shape
	pos := offset + memacc.WordSize

	var declWord uint32
	if shape.Decl {
		if declWord, err = acc.ReadWord(pos); err != nil {
			return nil, err
		}
		pos += memacc.WordSize
	}

	if shape.Dst {
		if inst.Dst, pos, err = tokens.ReadDstParam(acc, pos, kind); err != nil {
			return nil, err
		}
	}

	if shape.Decl {
		if inst.Decl, err = decodeDeclaration(declWord, inst.Dst, kind, offset+memacc.WordSize); err != nil {
			return nil, err
		}
	}

	if shape.Imm != d3d.ImmNone {
		words, err := acc.ReadWords(pos, shape.Imm.Words())
		if err != nil {
			return nil, err
		}
		switch shape.Imm {
		case d3d.ImmFloat4:
			for n, w := range words {
				inst.Floats[n] = math.Float32frombits(w)
			}
		case d3d.ImmInt4:
			for n, w := range words {
				inst.Ints[n] = int32(w)
			}
		case d3d.ImmBool:
			inst.Bool = words[0]
		}
		pos += len(words) * memacc.WordSize
	}

	for n := 0; n < shape.Srcs; n++ {
		var src *tokens.SrcParam
		if src, pos, err = tokens.ReadSrcParam(acc, pos, kind); err != nil {
			return nil, err
		}
		inst.Src = append(inst.Src, src)
	}

	inst.consumed = pos - offset
	return inst, nil
}

func decodeDeclaration(word uint32, dst *tokens.DstParam, kind d3d.ShaderKind, offset int) (Declaration, error) {
	decl := Declaration{Raw: word}
	switch {
	case dst.Type == d3d.RegInput || dst.Type == d3d.RegOutput || dst.Type.IsTexture(kind):
		decl.HasUsage = true
		decl.Usage = d3d.DeclUsage(memacc.Field(word, 0, 5))
		decl.UsageIndex = uint8(memacc.Field(word, 16, 4))
		if !decl.Usage.Valid() {
			return decl, common.Errorf(common.ErrInvalidDecl, offset, "usage %d", uint8(decl.Usage))
		}
	case dst.Type == d3d.RegSampler:
		decl.HasSampler = true
		decl.TextureType = d3d.TextureType(memacc.Field(word, 27, 4))
		if !decl.TextureType.Valid() {
			return decl, common.Errorf(common.ErrInvalidDecl, offset, "sampler texture type %d", uint8(decl.TextureType))
		}
	}
	return decl, nil
}
