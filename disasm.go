// Package sm3dis disassembles Direct3D 9 Shader Model 2 and 3 bytecode into assembler text.
//
// A listing starts with the profile line (vs_3_0, ps_2_0, ...) followed by one line per
// instruction. Decoding is linear: the stream is walked token by token until END or the end of
// the buffer and control flow is never followed. Any malformed token aborts the listing; the
// returned error carries the byte offset of the offending token.
package sm3dis

import (
	"strings"

	"sm3dis/internal/common"
	"sm3dis/internal/lister"
	"sm3dis/internal/shader"
	"sm3dis/internal/tokens"
)

// Options selects listing extras. The zero value produces the plain listing.
type Options struct {
	// Debug precedes every instruction with a "; Offset 0x.." comment line.
	Debug bool
	// Dump follows every instruction with a dump of its decoded fields as comment lines.
	Dump bool
	// CommentBlocks sizes COMMENT tokens by their comment length instead of the length field,
	// as compiler output with embedded constant tables needs.
	CommentBlocks bool
	// Logger receives diagnostics. Nil discards them.
	Logger common.Logger
}

func (o Options) config() lister.Config {
	return lister.Config{
		Debug:         o.Debug,
		Dump:          o.Dump,
		CommentBlocks: o.CommentBlocks,
		Logger:        o.Logger,
	}
}

// Disassemble returns the listing of buf, one line per instruction, each ending in a newline.
// When debug is set every instruction line is preceded by its byte offset.
func Disassemble(buf []byte, debug bool) (string, error) {
	return DisassembleWithOptions(buf, Options{Debug: debug})
}

// DisassembleWithOptions is Disassemble with the full option set. On failure the listing
// produced up to the failing instruction is returned along with the error.
func DisassembleWithOptions(buf []byte, opts Options) (string, error) {
	lines, err := lister.Lines(opts.config(), buf)
	if len(lines) == 0 {
		return "", err
	}
	return strings.Join(lines, "\n") + "\n", err
}

// Program is a decoded shader.
type Program struct {
	Version      tokens.Version
	Instructions []*shader.Instruction
}

// Decode parses buf without rendering it.
func Decode(buf []byte) (Program, error) {
	var prog Program
	version, err := lister.Walk(lister.Config{}, buf, func(inst *shader.Instruction) error {
		prog.Instructions = append(prog.Instructions, inst)
		return nil
	})
	prog.Version = version
	return prog, err
}
