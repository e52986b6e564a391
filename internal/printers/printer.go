package printers

import (
	"errors"
	"fmt"
	"strings"

	"sm3dis/internal/common"
	"sm3dis/internal/d3d"
	"sm3dis/internal/shader"
	"sm3dis/internal/tokens"
)

// InstrPrinter renders decoded instructions as assembler lines for one shader.
type InstrPrinter struct {
	version tokens.Version
}

func NewInstrPrinter(version tokens.Version) *InstrPrinter {
	return &InstrPrinter{version: version}
}

// Version returns the shader version the printer names registers for.
func (p *InstrPrinter) Version() tokens.Version {
	return p.version
}

// Header returns the profile line that opens a listing.
func (p *InstrPrinter) Header() string {
	return p.version.String()
}

// Mnemonic returns the instruction mnemonic with the destination modifier suffixes.
func (p *InstrPrinter) Mnemonic(inst *shader.Instruction) string {
	mn := inst.Desc.Mnemonic
	if inst.Token.Opcode == d3d.OpDcl && inst.Dst != nil {
		switch {
		case inst.Decl.HasUsage:
			mn = fmt.Sprintf("dcl_%s%d", inst.Decl.Usage, inst.Decl.UsageIndex)
		case inst.Decl.HasSampler:
			mn = "dcl_" + inst.Decl.TextureType.String()
		}
	}
	if inst.Dst != nil {
		mn += inst.Dst.ResultMod.Suffix()
	}
	return mn
}

// Render returns the text line for inst.
func (p *InstrPrinter) Render(inst *shader.Instruction) (string, error) {
	line, err := p.render(inst)
	if err != nil {
		var derr *common.Error
		if errors.As(err, &derr) && derr.Offset == common.NoOffset {
			derr.Offset = inst.Offset
		}
		return "", err
	}
	return line, nil
}

func (p *InstrPrinter) render(inst *shader.Instruction) (string, error) {
	kind := p.version.Kind
	mn := p.Mnemonic(inst)

	var dst string
	if inst.Dst != nil {
		var err error
		if dst, err = DstText(inst.Dst, kind); err != nil {
			return "", err
		}
	}

	switch inst.Desc.Shape.Imm {
	case d3d.ImmFloat4:
		f := inst.Floats
		return fmt.Sprintf("%s %s, %f, %f, %f, %f", mn, dst, f[0], f[1], f[2], f[3]), nil
	case d3d.ImmInt4:
		n := inst.Ints
		return fmt.Sprintf("%s %s, %d, %d, %d, %d", mn, dst, n[0], n[1], n[2], n[3]), nil
	case d3d.ImmBool:
		b := "FALSE"
		if inst.Bool != 0 {
			b = "TRUE"
		}
		return fmt.Sprintf("%s %s, %s", mn, dst, b), nil
	}

	operands := make([]string, 0, len(inst.Src)+1)
	if inst.Dst != nil {
		operands = append(operands, dst)
	}
	for _, src := range inst.Src {
		text, err := SrcText(src, kind)
		if err != nil {
			return "", err
		}
		operands = append(operands, text)
	}
	if len(operands) == 0 {
		return mn, nil
	}
	return mn + " " + strings.Join(operands, ", "), nil
}
