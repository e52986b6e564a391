package tokens

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sm3dis/internal/common"
	"sm3dis/internal/d3d"
	"sm3dis/internal/memacc"
	"sm3dis/tests/helpers"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		word uint32
		want string
		kind d3d.ShaderKind
	}{
		{0xFFFE0300, "vs_3_0", d3d.ShaderVertex},
		{0xFFFF0300, "ps_3_0", d3d.ShaderPixel},
		{0xFFFE0200, "vs_2_0", d3d.ShaderVertex},
		{0xFFFF0201, "ps_2_1", d3d.ShaderPixel},
	}
	for _, tt := range tests {
		v, err := ParseVersion(tt.word)
		require.NoError(t, err)
		assert.Equal(t, tt.want, v.String())
		assert.Equal(t, tt.kind, v.Kind)
		assert.Equal(t, tt.word, v.Raw)
	}
}

func TestParseVersionMalformed(t *testing.T) {
	for _, word := range []uint32{0x00000300, 0xFFFD0300, 0x12345678} {
		_, err := ParseVersion(word)
		assert.True(t, errors.Is(err, common.ErrMalformedHeader), "0x%08X: %v", word, err)
	}
}

func TestReadVersionShortBuffer(t *testing.T) {
	_, err := ReadVersion(memacc.NewBufferAccessor([]byte{0x00, 0x03, 0xFE}))
	assert.True(t, errors.Is(err, common.ErrUnexpectedEOS))
}

func TestParseInstructionToken(t *testing.T) {
	tok := ParseInstructionToken(0x5203_0002)
	assert.Equal(t, d3d.OpAdd, tok.Opcode)
	assert.Equal(t, uint8(0x03), tok.Flags)
	assert.Equal(t, uint8(2), tok.Length)
	assert.True(t, tok.Predicated)
	assert.True(t, tok.Coissue)
	assert.Equal(t, 12, tok.Size())
	assert.False(t, tok.IsEnd())

	end := ParseInstructionToken(0x0000FFFF)
	assert.True(t, end.IsEnd())
	assert.Equal(t, 4, end.Size())

	comment := ParseInstructionToken(0x0010FFFE)
	assert.Equal(t, d3d.OpComment, comment.Opcode)
	assert.Equal(t, 16, comment.CommentSize())
}

func TestReadInstructionTokenUnknown(t *testing.T) {
	acc := memacc.NewBufferAccessor(helpers.VertexShader(3, 0).Op(200, 0).Bytes())
	_, _, err := ReadInstructionToken(acc, 4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnknownOpcode))

	var derr *common.Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, 4, derr.Offset)
	assert.Contains(t, derr.Message, "opcode 200")
}

func TestRegisterTypeSplit(t *testing.T) {
	for rt := 0; rt < d3d.NumRegisterTypes; rt++ {
		word := helpers.DstToken(rt, 5, helpers.FullMask)
		p := ParseDstParam(word)
		assert.Equal(t, d3d.RegisterType(rt), p.Type)
		assert.Equal(t, uint16(5), p.Num)
		assert.Equal(t, EncodeRegisterType(d3d.RegisterType(rt)), word&0x70001800)
	}
}

func TestParseDstParam(t *testing.T) {
	word := helpers.WithResultMod(helpers.DstToken(helpers.Temp, 3, 0x3), 0x3) | 0x0200_0000
	p := ParseDstParam(word)
	assert.Equal(t, d3d.RegTemp, p.Type)
	assert.Equal(t, uint16(3), p.Num)
	assert.Equal(t, uint8(0x3), p.WriteMask)
	assert.Equal(t, d3d.ResultSaturate|d3d.ResultPartialPrecision, p.ResultMod)
	assert.Equal(t, uint8(2), p.ShiftScale)
	assert.False(t, p.Relative)
}

func TestParseSrcParam(t *testing.T) {
	word := helpers.WithSrcMod(helpers.SrcToken(helpers.Const, 2047, helpers.Swizzle(3, 2, 1, 0)), 11)
	p := ParseSrcParam(word)
	assert.Equal(t, d3d.RegConst, p.Type)
	assert.Equal(t, uint16(2047), p.Num)
	assert.Equal(t, uint8(0x1B), p.Swizzle)
	assert.Equal(t, d3d.SrcModAbs, p.Modifier)
	assert.Equal(t, uint8(3), p.Component(0))
	assert.Equal(t, uint8(0), p.Component(3))
}

func TestReadSrcParamRelative(t *testing.T) {
	words := helpers.VertexShader(3, 0).
		Word(helpers.WithRelative(helpers.SrcToken(helpers.Const, 4, helpers.IdentitySwizzle))).
		Word(helpers.SrcToken(helpers.Addr, 0, helpers.Swizzle(0, 0, 0, 0)))
	acc := memacc.NewBufferAccessor(words.Bytes())

	p, next, err := ReadSrcParam(acc, 4, d3d.ShaderVertex)
	require.NoError(t, err)
	assert.Equal(t, 12, next)
	require.NotNil(t, p.RelParam)
	assert.Equal(t, d3d.RegAddr, p.RelParam.Type)
	assert.Nil(t, p.RelParam.RelParam)
}

func TestReadParamInvalidRelative(t *testing.T) {
	tests := []struct {
		name string
		kind d3d.ShaderKind
		rel  int
	}{
		{"temp in vs", d3d.ShaderVertex, helpers.Temp},
		{"texture in ps", d3d.ShaderPixel, helpers.Texture},
		{"const in ps", d3d.ShaderPixel, helpers.Const},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := helpers.VertexShader(3, 0).
				Word(helpers.WithRelative(helpers.SrcToken(helpers.Const, 0, helpers.IdentitySwizzle))).
				Word(helpers.SrcToken(tt.rel, 0, 0))
			acc := memacc.NewBufferAccessor(prog.Bytes())

			_, _, err := ReadSrcParam(acc, 4, tt.kind)
			assert.True(t, errors.Is(err, common.ErrInvalidRelative), "%v", err)
			_, _, err = ReadDstParam(acc, 4, tt.kind)
			assert.True(t, errors.Is(err, common.ErrInvalidRelative), "%v", err)

			var derr *common.Error
			require.True(t, errors.As(err, &derr))
			assert.Equal(t, 8, derr.Offset)
		})
	}
}

func TestReadDstParamLoopRelative(t *testing.T) {
	prog := helpers.PixelShader(3, 0).
		Word(helpers.WithRelative(helpers.DstToken(helpers.Input, 0, helpers.FullMask))).
		Word(helpers.SrcToken(helpers.Loop, 0, 0))
	p, next, err := ReadDstParam(memacc.NewBufferAccessor(prog.Bytes()), 4, d3d.ShaderPixel)
	require.NoError(t, err)
	assert.Equal(t, 12, next)
	assert.Equal(t, d3d.RegLoop, p.RelParam.Type)
}

func TestReadSrcParamInvalidModifier(t *testing.T) {
	prog := helpers.VertexShader(3, 0).
		Word(helpers.WithSrcMod(helpers.SrcToken(helpers.Temp, 0, helpers.IdentitySwizzle), 14))
	_, _, err := ReadSrcParam(memacc.NewBufferAccessor(prog.Bytes()), 4, d3d.ShaderVertex)
	assert.True(t, errors.Is(err, common.ErrInvalidModifier))
}

func TestReadParamTruncated(t *testing.T) {
	prog := helpers.VertexShader(3, 0).
		Word(helpers.WithRelative(helpers.SrcToken(helpers.Const, 0, helpers.IdentitySwizzle)))
	acc := memacc.NewBufferAccessor(prog.Bytes())
	_, _, err := ReadSrcParam(acc, 4, d3d.ShaderVertex)
	assert.True(t, errors.Is(err, common.ErrUnexpectedEOS))
	_, _, err = ReadDstParam(acc, 8, d3d.ShaderVertex)
	assert.True(t, errors.Is(err, common.ErrUnexpectedEOS))
}
