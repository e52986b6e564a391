package d3d

import "fmt"

// Shader kinds and versions

// ShaderKind is the upper half of the version token.
type ShaderKind uint16

const (
	ShaderVertex ShaderKind = 0xFFFE
	ShaderPixel  ShaderKind = 0xFFFF
)

// Prefix returns the assembler profile prefix, "vs" or "ps".
func (k ShaderKind) Prefix() string {
	if k == ShaderVertex {
		return "vs"
	}
	return "ps"
}

func (k ShaderKind) String() string {
	switch k {
	case ShaderVertex:
		return "vertex"
	case ShaderPixel:
		return "pixel"
	default:
		return fmt.Sprintf("ShaderKind(0x%04X)", uint16(k))
	}
}

// Register types (D3DSHADER_PARAM_REGISTER_TYPE)

// RegisterType is the 5 bit register file selector of a parameter token.
type RegisterType uint8

const (
	RegTemp        RegisterType = 0
	RegInput       RegisterType = 1
	RegConst       RegisterType = 2
	RegTexture     RegisterType = 3 // pixel shaders
	RegAddr        RegisterType = 3 // vertex shaders
	RegRastOut     RegisterType = 4
	RegAttrOut     RegisterType = 5
	RegTexCrdOut   RegisterType = 6
	RegOutput      RegisterType = 6
	RegConstInt    RegisterType = 7
	RegColorOut    RegisterType = 8
	RegDepthOut    RegisterType = 9
	RegSampler     RegisterType = 10
	RegConst2      RegisterType = 11
	RegConst3      RegisterType = 12
	RegConst4      RegisterType = 13
	RegConstBool   RegisterType = 14
	RegLoop        RegisterType = 15
	RegTempFloat16 RegisterType = 16
	RegMiscType    RegisterType = 17
	RegLabel       RegisterType = 18
	RegPredicate   RegisterType = 19

	NumRegisterTypes = 20
)

// IsAddress reports whether the register is the address register a#.
// Value 3 only means address inside a vertex shader.
func (r RegisterType) IsAddress(kind ShaderKind) bool {
	return r == RegAddr && kind == ShaderVertex
}

// IsTexture reports whether the register is the texture register t#.
// Value 3 only means texture inside a pixel shader.
func (r RegisterType) IsTexture(kind ShaderKind) bool {
	return r == RegTexture && kind == ShaderPixel
}

// CanIndex reports whether r may appear as the relative index of another register.
func (r RegisterType) CanIndex(kind ShaderKind) bool {
	return r == RegLoop || r.IsAddress(kind)
}

var registerTypeNames = [NumRegisterTypes]string{
	"temp", "input", "const", "texture/addr", "rastout", "attrout", "output", "constint",
	"colorout", "depthout", "sampler", "const2", "const3", "const4", "constbool", "loop",
	"tempfloat16", "misctype", "label", "predicate",
}

func (r RegisterType) String() string {
	if int(r) < len(registerTypeNames) {
		return registerTypeNames[r]
	}
	return fmt.Sprintf("RegisterType(%d)", uint8(r))
}

// Declaration usages (D3DDECLUSAGE)

type DeclUsage uint8

const (
	UsagePosition DeclUsage = iota
	UsageBlendWeight
	UsageBlendIndices
	UsageNormal
	UsagePSize
	UsageTexCoord
	UsageTangent
	UsageBinormal
	UsageTessFactor
	UsagePositionT
	UsageColor
	UsageFog
	UsageDepth
	UsageSample

	NumDeclUsages
)

var declUsageNames = [NumDeclUsages]string{
	"position", "blendweight", "blendindices", "normal", "psize", "texcoord", "tangent",
	"binormal", "tessfactor", "positiont", "color", "fog", "depth", "sample",
}

// Valid reports whether u names a known usage.
func (u DeclUsage) Valid() bool { return u < NumDeclUsages }

func (u DeclUsage) String() string {
	if u.Valid() {
		return declUsageNames[u]
	}
	return fmt.Sprintf("DeclUsage(%d)", uint8(u))
}

// Sampler texture types (D3DSAMPLER_TEXTURE_TYPE, already shifted down)

type TextureType uint8

const (
	TextureUnknown TextureType = iota
	Texture1D
	Texture2D
	TextureCube
	TextureVolume

	NumTextureTypes
)

var textureTypeNames = [NumTextureTypes]string{"unknown", "1d", "2d", "cube", "volume"}

func (t TextureType) Valid() bool { return t < NumTextureTypes }

func (t TextureType) String() string {
	if t.Valid() {
		return textureTypeNames[t]
	}
	return fmt.Sprintf("TextureType(%d)", uint8(t))
}

// Source modifiers (D3DSHADER_PARAM_SRCMOD_TYPE)

type SrcModifier uint8

const (
	SrcModNone    SrcModifier = iota
	SrcModNeg                 // -r
	SrcModBias                // r_bias
	SrcModBiasNeg             // -r_bias
	SrcModSign                // r_bx2
	SrcModSignNeg             // -r_bx2
	SrcModComp                // 1-r
	SrcModX2                  // r_x2
	SrcModX2Neg               // -r_x2
	SrcModDz                  // r_dz
	SrcModDw                  // r_dw
	SrcModAbs                 // abs(r)
	SrcModAbsNeg              // -abs(r)
	SrcModNot                 // NOT r

	NumSrcModifiers
)

var srcModFormats = [NumSrcModifiers]string{
	"%s", "-%s", "%s_bias", "-%s_bias", "%s_bx2", "-%s_bx2", "1-%s", "%s_x2", "-%s_x2",
	"%s_dz", "%s_dw", "abs(%s)", "-abs(%s)", "NOT %s",
}

func (m SrcModifier) Valid() bool { return m < NumSrcModifiers }

// Apply wraps an already swizzled register name in the modifier's syntax.
func (m SrcModifier) Apply(reg string) string {
	if !m.Valid() {
		return reg
	}
	return fmt.Sprintf(srcModFormats[m], reg)
}

// Result modifiers (D3DSPDM_*, already shifted down)

type ResultModifier uint8

const (
	ResultSaturate         ResultModifier = 0x1
	ResultPartialPrecision ResultModifier = 0x2
	ResultCentroid         ResultModifier = 0x4
)

// Suffix returns the mnemonic suffix, always in _sat, _pp, _centroid order.
func (m ResultModifier) Suffix() string {
	s := ""
	if m&ResultSaturate != 0 {
		s += "_sat"
	}
	if m&ResultPartialPrecision != 0 {
		s += "_pp"
	}
	if m&ResultCentroid != 0 {
		s += "_centroid"
	}
	return s
}
