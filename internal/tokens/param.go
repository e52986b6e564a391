package tokens

import (
	"sm3dis/internal/common"
	"sm3dis/internal/d3d"
	"sm3dis/internal/memacc"
)

// Register holds the fields shared by destination and source parameter tokens.
type Register struct {
	Type     d3d.RegisterType
	Num      uint16 // bits 0-10
	Relative bool   // bit 13
}

// registerFields decodes the register number, the relative flag and the split register type.
// The type is (bits 11-12 << 3) + bits 28-30.
func registerFields(word uint32) Register {
	high := memacc.Field(word, 11, 2)
	low := memacc.Field(word, 28, 3)
	return Register{
		Type:     d3d.RegisterType(high<<3 + low),
		Num:      uint16(memacc.Field(word, 0, 11)),
		Relative: memacc.Bit(word, 13),
	}
}

// EncodeRegisterType splits a register type back into its token bits.
func EncodeRegisterType(t d3d.RegisterType) uint32 {
	return (uint32(t)&0x7)<<28 | (uint32(t)>>3&0x3)<<11
}

// DstParam is a destination parameter token (D3DSP_* layout).
type DstParam struct {
	Register
	WriteMask  uint8              // bits 16-19, x=1 y=2 z=4 w=8
	ResultMod  d3d.ResultModifier // bits 20-23
	ShiftScale uint8              // bits 24-27
	Raw        uint32
	RelParam   *DstParam
}

// ParseDstParam decodes one destination token without following relative addressing.
func ParseDstParam(word uint32) DstParam {
	return DstParam{
		Register:   registerFields(word),
		WriteMask:  uint8(memacc.Field(word, 16, 4)),
		ResultMod:  d3d.ResultModifier(memacc.Field(word, 20, 4)),
		ShiftScale: uint8(memacc.Field(word, 24, 4)),
		Raw:        word,
	}
}

// SrcParam is a source parameter token.
type SrcParam struct {
	Register
	Swizzle  uint8           // bits 16-23, four 2 bit component selectors, x in the low bits
	Modifier d3d.SrcModifier // bits 24-27
	Raw      uint32
	RelParam *SrcParam
}

// IdentitySwizzle selects x, y, z, w in order.
const IdentitySwizzle uint8 = 0xE4

// ParseSrcParam decodes one source token without following relative addressing.
func ParseSrcParam(word uint32) SrcParam {
	return SrcParam{
		Register: registerFields(word),
		Swizzle:  uint8(memacc.Field(word, 16, 8)),
		Modifier: d3d.SrcModifier(memacc.Field(word, 24, 4)),
		Raw:      word,
	}
}

// Component returns the channel (0-3) that swizzle slot i reads.
func (p *SrcParam) Component(i int) uint8 {
	return (p.Swizzle >> (2 * uint(i))) & 0x3
}

// ReadDstParam decodes the destination token at offset, plus its relative address token
// when the relative flag is set. It returns the offset following everything consumed.
func ReadDstParam(acc *memacc.BufferAccessor, offset int, kind d3d.ShaderKind) (*DstParam, int, error) {
	word, err := acc.ReadWord(offset)
	if err != nil {
		return nil, offset, err
	}
	p := ParseDstParam(word)
	offset += memacc.WordSize
	if p.Relative {
		word, err = acc.ReadWord(offset)
		if err != nil {
			return nil, offset, err
		}
		rel := ParseDstParam(word)
		if err := checkRelative(rel.Register, kind, offset); err != nil {
			return nil, offset, err
		}
		p.RelParam = &rel
		offset += memacc.WordSize
	}
	return &p, offset, nil
}

// ReadSrcParam decodes the source token at offset and its relative address token, if any.
func ReadSrcParam(acc *memacc.BufferAccessor, offset int, kind d3d.ShaderKind) (*SrcParam, int, error) {
	word, err := acc.ReadWord(offset)
	if err != nil {
		return nil, offset, err
	}
	p := ParseSrcParam(word)
	if !p.Modifier.Valid() {
		return nil, offset, common.Errorf(common.ErrInvalidModifier, offset,
			"source modifier %d", uint8(p.Modifier))
	}
	offset += memacc.WordSize
	if p.Relative {
		word, err = acc.ReadWord(offset)
		if err != nil {
			return nil, offset, err
		}
		rel := ParseSrcParam(word)
		if err := checkRelative(rel.Register, kind, offset); err != nil {
			return nil, offset, err
		}
		p.RelParam = &rel
		offset += memacc.WordSize
	}
	return &p, offset, nil
}

func checkRelative(rel Register, kind d3d.ShaderKind, offset int) error {
	if rel.Type.CanIndex(kind) {
		return nil
	}
	return common.Errorf(common.ErrInvalidRelative, offset,
		"%s register type %s used as relative address", kind, rel.Type)
}
