package d3d

import "fmt"

// Opcode is the low 16 bits of an instruction token (D3DSHADER_INSTRUCTION_OPCODE_TYPE).
type Opcode uint16

const (
	OpNop     Opcode = 0
	OpMov     Opcode = 1
	OpAdd     Opcode = 2
	OpSub     Opcode = 3
	OpMad     Opcode = 4
	OpMul     Opcode = 5
	OpRcp     Opcode = 6
	OpRsq     Opcode = 7
	OpDp3     Opcode = 8
	OpDp4     Opcode = 9
	OpMin     Opcode = 10
	OpMax     Opcode = 11
	OpSlt     Opcode = 12
	OpSge     Opcode = 13
	OpExp     Opcode = 14
	OpLog     Opcode = 15
	OpLit     Opcode = 16
	OpDst     Opcode = 17
	OpLrp     Opcode = 18
	OpFrc     Opcode = 19
	OpM4x4    Opcode = 20
	OpM4x3    Opcode = 21
	OpM3x4    Opcode = 22
	OpM3x3    Opcode = 23
	OpM3x2    Opcode = 24
	OpCall    Opcode = 25
	OpCallNz  Opcode = 26
	OpLoop    Opcode = 27
	OpRet     Opcode = 28
	OpEndLoop Opcode = 29
	OpLabel   Opcode = 30
	OpDcl     Opcode = 31
	OpPow     Opcode = 32
	OpCrs     Opcode = 33
	OpSgn     Opcode = 34
	OpAbs     Opcode = 35
	OpNrm     Opcode = 36
	OpSinCos  Opcode = 37
	OpRep     Opcode = 38
	OpEndRep  Opcode = 39
	OpIf      Opcode = 40
	OpIfc     Opcode = 41
	OpElse    Opcode = 42
	OpEndIf   Opcode = 43
	OpBreak   Opcode = 44
	OpBreakC  Opcode = 45
	OpMova    Opcode = 46
	OpDefB    Opcode = 47
	OpDefI    Opcode = 48

	OpTexCoord     Opcode = 64
	OpTexKill      Opcode = 65
	OpTex          Opcode = 66
	OpTexBem       Opcode = 67
	OpTexBemL      Opcode = 68
	OpTexReg2AR    Opcode = 69
	OpTexReg2GB    Opcode = 70
	OpTexM3x2Pad   Opcode = 71
	OpTexM3x2Tex   Opcode = 72
	OpTexM3x3Pad   Opcode = 73
	OpTexM3x3Tex   Opcode = 74
	OpTexM3x3Diff  Opcode = 75
	OpTexM3x3Spec  Opcode = 76
	OpTexM3x3VSpec Opcode = 77
	OpExpP         Opcode = 78
	OpLogP         Opcode = 79
	OpCnd          Opcode = 80
	OpDef          Opcode = 81
	OpTexReg2RGB   Opcode = 82
	OpTexDp3Tex    Opcode = 83
	OpTexM3x2Depth Opcode = 84
	OpTexDp3       Opcode = 85
	OpTexM3x3      Opcode = 86
	OpTexDepth     Opcode = 87
	OpCmp          Opcode = 88
	OpBem          Opcode = 89
	OpDp2Add       Opcode = 90
	OpDsx          Opcode = 91
	OpDsy          Opcode = 92
	OpTexLdd       Opcode = 93
	OpSetP         Opcode = 94
	OpTexLdl       Opcode = 95
	OpBreakP       Opcode = 96

	OpPhase   Opcode = 0xFFFD
	OpComment Opcode = 0xFFFE
	OpEnd     Opcode = 0xFFFF
)

// ImmKind selects the immediate payload trailing the destination.
type ImmKind uint8

const (
	ImmNone   ImmKind = iota
	ImmFloat4         // def
	ImmInt4           // defi
	ImmBool           // defb
)

// Words returns how many dwords the immediate payload occupies.
func (k ImmKind) Words() int {
	switch k {
	case ImmFloat4, ImmInt4:
		return 4
	case ImmBool:
		return 1
	}
	return 0
}

// Shape describes the operand tokens an opcode carries after its instruction token.
type Shape struct {
	Dst  bool    // one destination parameter
	Srcs int     // number of source parameters, 0-4
	Imm  ImmKind // immediate payload after the destination
	Decl bool    // a declaration word precedes the destination
}

// Words returns the operand dword count, not counting relative address tokens.
func (s Shape) Words() int {
	n := s.Srcs + s.Imm.Words()
	if s.Dst {
		n++
	}
	if s.Decl {
		n++
	}
	return n
}

// Descriptor is the static registry entry for one opcode.
type Descriptor struct {
	Op       Opcode
	Mnemonic string
	Shape    Shape
}

var (
	shapeNone  = Shape{}
	shapeD     = Shape{Dst: true}
	shapeDS    = Shape{Dst: true, Srcs: 1}
	shapeDSS   = Shape{Dst: true, Srcs: 2}
	shapeDSSS  = Shape{Dst: true, Srcs: 3}
	shapeDSSSS = Shape{Dst: true, Srcs: 4}
	shapeS     = Shape{Srcs: 1}
	shapeSS    = Shape{Srcs: 2}
	shapeDcl   = Shape{Dst: true, Decl: true}
	shapeDef   = Shape{Dst: true, Imm: ImmFloat4}
	shapeDefI  = Shape{Dst: true, Imm: ImmInt4}
	shapeDefB  = Shape{Dst: true, Imm: ImmBool}
)

// registry maps every known opcode to its mnemonic and operand shape.
// TEXM3x3DIFF has no shape here; its length field keeps the stream aligned.
var registry = map[Opcode]Descriptor{
	OpNop:     {OpNop, "nop", shapeNone},
	OpMov:     {OpMov, "mov", shapeDS},
	OpAdd:     {OpAdd, "add", shapeDSS},
	OpSub:     {OpSub, "sub", shapeDSS},
	OpMad:     {OpMad, "mad", shapeDSSS},
	OpMul:     {OpMul, "mul", shapeDSS},
	OpRcp:     {OpRcp, "rcp", shapeDS},
	OpRsq:     {OpRsq, "rsq", shapeDS},
	OpDp3:     {OpDp3, "dp3", shapeDSS},
	OpDp4:     {OpDp4, "dp4", shapeDSS},
	OpMin:     {OpMin, "min", shapeDSS},
	OpMax:     {OpMax, "max", shapeDSS},
	OpSlt:     {OpSlt, "slt", shapeDSS},
	OpSge:     {OpSge, "sge", shapeDSS},
	OpExp:     {OpExp, "exp", shapeDS},
	OpLog:     {OpLog, "log", shapeDS},
	OpLit:     {OpLit, "lit", shapeDS},
	OpDst:     {OpDst, "dst", shapeDSS},
	OpLrp:     {OpLrp, "lrp", shapeDSSS},
	OpFrc:     {OpFrc, "frc", shapeDS},
	OpM4x4:    {OpM4x4, "m4x4", shapeDSS},
	OpM4x3:    {OpM4x3, "m4x3", shapeDSS},
	OpM3x4:    {OpM3x4, "m3x4", shapeDSS},
	OpM3x3:    {OpM3x3, "m3x3", shapeDSS},
	OpM3x2:    {OpM3x2, "m3x2", shapeDSS},
	OpCall:    {OpCall, "call", shapeS},
	OpCallNz:  {OpCallNz, "callnz", shapeSS},
	OpLoop:    {OpLoop, "loop", shapeSS},
	OpRet:     {OpRet, "ret", shapeNone},
	OpEndLoop: {OpEndLoop, "endloop", shapeNone},
	OpLabel:   {OpLabel, "label", shapeS},
	OpDcl:     {OpDcl, "dcl", shapeDcl},
	OpPow:     {OpPow, "pow", shapeDSS},
	OpCrs:     {OpCrs, "crs", shapeDSS},
	OpSgn:     {OpSgn, "sgn", shapeDSSS},
	OpAbs:     {OpAbs, "abs", shapeDS},
	OpNrm:     {OpNrm, "nrm", shapeDS},
	OpSinCos:  {OpSinCos, "sincos", shapeDS},
	OpRep:     {OpRep, "rep", shapeS},
	OpEndRep:  {OpEndRep, "endrep", shapeNone},
	OpIf:      {OpIf, "if", shapeS},
	OpIfc:     {OpIfc, "ifc", shapeSS},
	OpElse:    {OpElse, "else", shapeNone},
	OpEndIf:   {OpEndIf, "endif", shapeNone},
	OpBreak:   {OpBreak, "break", shapeNone},
	OpBreakC:  {OpBreakC, "breakc", shapeSS},
	OpMova:    {OpMova, "mova", shapeDS},
	OpDefB:    {OpDefB, "defb", shapeDefB},
	OpDefI:    {OpDefI, "defi", shapeDefI},

	OpTexCoord:     {OpTexCoord, "texcoord", shapeD},
	OpTexKill:      {OpTexKill, "texkill", shapeD},
	OpTex:          {OpTex, "tex", shapeDSS},
	OpTexBem:       {OpTexBem, "texbem", shapeDS},
	OpTexBemL:      {OpTexBemL, "texbeml", shapeDS},
	OpTexReg2AR:    {OpTexReg2AR, "texreg2ar", shapeDS},
	OpTexReg2GB:    {OpTexReg2GB, "texreg2gb", shapeDS},
	OpTexM3x2Pad:   {OpTexM3x2Pad, "texm3x2pad", shapeDS},
	OpTexM3x2Tex:   {OpTexM3x2Tex, "texm3x2tex", shapeDS},
	OpTexM3x3Pad:   {OpTexM3x3Pad, "texm3x3pad", shapeDS},
	OpTexM3x3Tex:   {OpTexM3x3Tex, "texm3x3tex", shapeDS},
	OpTexM3x3Diff:  {OpTexM3x3Diff, "texm3x3diff", shapeNone},
	OpTexM3x3Spec:  {OpTexM3x3Spec, "texm3x3spec", shapeDSS},
	OpTexM3x3VSpec: {OpTexM3x3VSpec, "texm3x3vspec", shapeDS},
	OpExpP:         {OpExpP, "expp", shapeDS},
	OpLogP:         {OpLogP, "logp", shapeDS},
	OpCnd:          {OpCnd, "cnd", shapeDSSS},
	OpDef:          {OpDef, "def", shapeDef},
	OpTexReg2RGB:   {OpTexReg2RGB, "texreg2rgb", shapeDS},
	OpTexDp3Tex:    {OpTexDp3Tex, "texdp3tex", shapeDS},
	OpTexM3x2Depth: {OpTexM3x2Depth, "texm3x2depth", shapeDS},
	OpTexDp3:       {OpTexDp3, "texdp3", shapeDS},
	OpTexM3x3:      {OpTexM3x3, "texm3x3", shapeDS},
	OpTexDepth:     {OpTexDepth, "texdepth", shapeD},
	OpCmp:          {OpCmp, "cmp", shapeDSSS},
	OpBem:          {OpBem, "bem", shapeDSS},
	OpDp2Add:       {OpDp2Add, "dp2add", shapeDSSS},
	OpDsx:          {OpDsx, "dsx", shapeDS},
	OpDsy:          {OpDsy, "dsy", shapeDS},
	OpTexLdd:       {OpTexLdd, "texldd", shapeDSSSS},
	OpSetP:         {OpSetP, "setp", shapeDSS},
	OpTexLdl:       {OpTexLdl, "texldl", shapeDSS},
	OpBreakP:       {OpBreakP, "breakp", shapeS},

	OpPhase:   {OpPhase, "phase", shapeNone},
	OpComment: {OpComment, "comment", shapeNone},
	OpEnd:     {OpEnd, "end", shapeNone},
}

// LookupOpcode returns the registry entry for op.
func LookupOpcode(op Opcode) (Descriptor, bool) {
	d, ok := registry[op]
	return d, ok
}

// Opcodes returns every registered opcode. The order is unspecified.
func Opcodes() []Opcode {
	ops := make([]Opcode, 0, len(registry))
	for op := range registry {
		ops = append(ops, op)
	}
	return ops
}

func (op Opcode) String() string {
	if d, ok := registry[op]; ok {
		return d.Mnemonic
	}
	return fmt.Sprintf("Opcode(%d)", uint16(op))
}
