package tokens

import (
	"sm3dis/internal/common"
	"sm3dis/internal/d3d"
	"sm3dis/internal/memacc"
)

// InstructionToken is the control word that starts every instruction.
type InstructionToken struct {
	Opcode     d3d.Opcode
	Flags      uint8 // opcode specific control bits 16-23
	Length     uint8 // dwords following the token, bits 24-27
	Predicated bool  // bit 28
	Coissue    bool  // bit 30
	Raw        uint32
}

// ParseInstructionToken splits a control word into its fields.
func ParseInstructionToken(word uint32) InstructionToken {
	return InstructionToken{
		Opcode:     d3d.Opcode(memacc.Field(word, 0, 16)),
		Flags:      uint8(memacc.Field(word, 16, 8)),
		Length:     uint8(memacc.Field(word, 24, 4)),
		Predicated: memacc.Bit(word, 28),
		Coissue:    memacc.Bit(word, 30),
		Raw:        word,
	}
}

// Size is the instruction size in bytes as declared by the length field.
// The stream always advances by Size, whatever the opcode decoder consumed.
func (t InstructionToken) Size() int {
	return (int(t.Length) + 1) * memacc.WordSize
}

// CommentSize is the dword count of a comment block, bits 16-30 of a COMMENT token.
func (t InstructionToken) CommentSize() int {
	return int(memacc.Field(t.Raw, 16, 15))
}

// IsEnd reports whether this token terminates the shader.
func (t InstructionToken) IsEnd() bool {
	return t.Opcode == d3d.OpEnd
}

// ReadInstructionToken reads the control word at offset and resolves its registry entry.
func ReadInstructionToken(acc *memacc.BufferAccessor, offset int) (InstructionToken, d3d.Descriptor, error) {
	word, err := acc.ReadWord(offset)
	if err != nil {
		return InstructionToken{}, d3d.Descriptor{}, err
	}
	tok := ParseInstructionToken(word)
	desc, ok := d3d.LookupOpcode(tok.Opcode)
	if !ok {
		return tok, d3d.Descriptor{}, common.Errorf(common.ErrUnknownOpcode, offset,
			"opcode %d (token 0x%08X)", uint16(tok.Opcode), word)
	}
	return tok, desc, nil
}
