package printers

import (
	"fmt"
	"strings"

	"sm3dis/internal/common"
	"sm3dis/internal/d3d"
	"sm3dis/internal/memacc"
	"sm3dis/internal/tokens"
)

// Register letters per shader kind. An empty entry has no name in that kind.
var vertexRegisterNames = [d3d.NumRegisterTypes]string{
	d3d.RegTemp:      "r",
	d3d.RegInput:     "v",
	d3d.RegConst:     "c",
	d3d.RegAddr:      "a",
	d3d.RegRastOut:   "rast",
	d3d.RegAttrOut:   "attr",
	d3d.RegOutput:    "o",
	d3d.RegConstInt:  "i",
	d3d.RegColorOut:  "oC",
	d3d.RegDepthOut:  "oDepth",
	d3d.RegSampler:   "s",
	d3d.RegConst2:    "c",
	d3d.RegConst3:    "c",
	d3d.RegConst4:    "c",
	d3d.RegConstBool: "b",
	d3d.RegLoop:      "aL",
	d3d.RegLabel:     "l",
	d3d.RegPredicate: "p",
}

var pixelRegisterNames = [d3d.NumRegisterTypes]string{
	d3d.RegTemp:      "r",
	d3d.RegInput:     "v",
	d3d.RegConst:     "c",
	d3d.RegTexture:   "t",
	d3d.RegRastOut:   "rast",
	d3d.RegAttrOut:   "attr",
	d3d.RegOutput:    "o",
	d3d.RegConstInt:  "i",
	d3d.RegColorOut:  "oC",
	d3d.RegDepthOut:  "oDepth",
	d3d.RegSampler:   "s",
	d3d.RegConst2:    "c",
	d3d.RegConst3:    "c",
	d3d.RegConst4:    "c",
	d3d.RegConstBool: "b",
	d3d.RegLoop:      "aL",
	d3d.RegMiscType:  "m",
	d3d.RegLabel:     "l",
	d3d.RegPredicate: "p",
}

// RegisterName returns the register letter for t in a shader of the given kind.
func RegisterName(t d3d.RegisterType, kind d3d.ShaderKind) (string, error) {
	table := &vertexRegisterNames
	if kind == d3d.ShaderPixel {
		table = &pixelRegisterNames
	}
	if int(t) < len(table) && table[t] != "" {
		return table[t], nil
	}
	return "", common.Errorf(common.ErrUnknownRegister, common.NoOffset,
		"register type %s in a %s shader", t, kind)
}

var componentNames = [4]byte{'x', 'y', 'z', 'w'}

// WriteMaskText renders a destination write mask. The full mask and the empty mask both
// render as nothing.
func WriteMaskText(mask uint8) string {
	if mask&0xF == 0xF || mask&0xF == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteByte('.')
	for i, c := range componentNames {
		if mask&(1<<uint(i)) != 0 {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// SwizzleText renders a source swizzle. Identity renders as nothing, and trailing repeats
// of the last component are dropped, so .x means .xxxx and .xy means .xyyy.
func SwizzleText(swizzle uint8) string {
	if swizzle == tokens.IdentitySwizzle {
		return ""
	}
	last := (swizzle >> 6) & 0x3
	out := []byte{componentNames[last]}
	differs := false
	for i := 2; i >= 0; i-- {
		c := (swizzle >> (2 * uint(i))) & 0x3
		if c != last || differs {
			out = append([]byte{componentNames[c]}, out...)
			differs = true
		}
	}
	return "." + string(out)
}

// registerText renders the register itself, followed by suffix (mask or swizzle).
// rel is the relative address register and relSuffix its own swizzle text. aL is a scalar
// counter, so it never carries a swizzle inside the brackets.
func registerText(reg tokens.Register, kind d3d.ShaderKind, suffix string, rel *tokens.Register, relSuffix string) (string, error) {
	name, err := RegisterName(reg.Type, kind)
	if err != nil {
		return "", err
	}

	if reg.Relative && rel != nil {
		var sb strings.Builder
		sb.WriteString(name)
		if reg.Num > 0 {
			fmt.Fprintf(&sb, "%d", reg.Num)
		}
		sb.WriteByte('[')
		switch {
		case rel.Type == d3d.RegLoop:
			sb.WriteString("aL")
		case rel.Type.IsAddress(kind):
			fmt.Fprintf(&sb, "a%d", rel.Num)
			sb.WriteString(relSuffix)
		default:
			return "", common.Errorf(common.ErrInvalidRelative, common.NoOffset,
				"%s register type %s used as relative address", kind, rel.Type)
		}
		sb.WriteByte(']')
		sb.WriteString(suffix)
		return sb.String(), nil
	}

	switch reg.Type {
	case d3d.RegLoop, d3d.RegDepthOut:
		return name + suffix, nil
	}
	return fmt.Sprintf("%s%d%s", name, reg.Num, suffix), nil
}

// DstText renders a destination parameter, without the result modifier suffixes.
func DstText(p *tokens.DstParam, kind d3d.ShaderKind) (string, error) {
	var rel *tokens.Register
	relSuffix := ""
	if p.RelParam != nil {
		// The index token of a destination is laid out like a source token: bits 16-23 select
		// the address component.
		rel = &p.RelParam.Register
		relSuffix = SwizzleText(uint8(memacc.Field(p.RelParam.Raw, 16, 8)))
	}
	return registerText(p.Register, kind, WriteMaskText(p.WriteMask), rel, relSuffix)
}

// SrcText renders a source parameter with its swizzle and modifier.
func SrcText(p *tokens.SrcParam, kind d3d.ShaderKind) (string, error) {
	var rel *tokens.Register
	relSuffix := ""
	if p.RelParam != nil {
		rel = &p.RelParam.Register
		relSuffix = SwizzleText(p.RelParam.Swizzle)
	}
	text, err := registerText(p.Register, kind, SwizzleText(p.Swizzle), rel, relSuffix)
	if err != nil {
		return "", err
	}
	return p.Modifier.Apply(text), nil
}
