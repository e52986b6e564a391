// Package lister walks a shader bytecode buffer and produces the text listing.
package lister

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"sm3dis/internal/common"
	"sm3dis/internal/d3d"
	"sm3dis/internal/memacc"
	"sm3dis/internal/printers"
	"sm3dis/internal/shader"
	"sm3dis/internal/tokens"
)

// Config selects the listing options. The zero value prints the plain listing to stdout.
type Config struct {
	Debug         bool // "; Offset 0x.." line before each instruction
	Dump          bool // dump every decoded instruction as ';' comment lines
	CommentBlocks bool // size COMMENT tokens by their 15 bit comment length
	OutputWriter  io.Writer
	Logger        common.Logger
}

type walkState int

const (
	stateRunning walkState = iota
	stateDone
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

// Walker is the stream state machine: it holds the read position and stops after END or at
// the end of the buffer. Control flow is never followed.
type Walker struct {
	cfg     Config
	log     common.Logger
	acc     *memacc.BufferAccessor
	version tokens.Version
	offset  int
	state   walkState
}

// NewWalker reads the version token and positions the walker at the first instruction.
func NewWalker(cfg Config, data []byte) (*Walker, error) {
	w := &Walker{cfg: cfg, log: logger(cfg), acc: memacc.NewBufferAccessor(data)}
	version, err := tokens.ReadVersion(w.acc)
	if err != nil {
		w.log.Error(err)
		return nil, err
	}
	w.version = version
	w.offset = memacc.WordSize
	w.log.Logf(common.SeverityDebug, "%s shader %s, %d bytes", version.Kind, version, w.acc.Len())
	return w, nil
}

// Version returns the decoded version token.
func (w *Walker) Version() tokens.Version {
	return w.version
}

// Next decodes the instruction at the current offset and advances past it.
// It returns io.EOF once the stream is done.
func (w *Walker) Next() (*shader.Instruction, error) {
	if w.state == stateDone {
		return nil, io.EOF
	}
	if w.offset >= w.acc.Len() {
		w.state = stateDone
		return nil, io.EOF
	}

	inst, err := shader.Decode(w.acc, w.offset, w.version.Kind)
	if err != nil {
		w.state = stateDone
		w.log.Error(err)
		return nil, err
	}
	w.log.Logf(common.SeverityDebug, "0x%04X %-12s size %d consumed %d",
		w.offset, inst.Desc.Mnemonic, inst.Size(), inst.Consumed())

	if inst.Token.IsEnd() {
		w.state = stateDone
	}
	w.offset += advance(w.cfg, inst)
	return inst, nil
}

// Walk calls fn for every instruction in stream order.
func Walk(cfg Config, data []byte, fn func(*shader.Instruction) error) (tokens.Version, error) {
	w, err := NewWalker(cfg, data)
	if err != nil {
		return tokens.Version{}, err
	}
	for {
		inst, err := w.Next()
		if err == io.EOF {
			return w.Version(), nil
		}
		if err != nil {
			return w.Version(), err
		}
		if err := fn(inst); err != nil {
			return w.Version(), err
		}
	}
}

func advance(cfg Config, inst *shader.Instruction) int {
	if cfg.CommentBlocks && inst.Token.Opcode == d3d.OpComment {
		return (inst.Token.CommentSize() + 1) * memacc.WordSize
	}
	return inst.Size()
}

// Run writes the listing of data to cfg.OutputWriter. Lines written before a decode
// failure stay written.
func Run(cfg Config, data []byte) error {
	w := cfg.OutputWriter
	if w == nil {
		w = os.Stdout
	}
	return emitLines(cfg, data, func(line string) error {
		_, err := fmt.Fprintln(w, line)
		return err
	})
}

// Lines returns the listing of data one line per entry. On failure the lines produced
// before the failing instruction are returned with the error.
func Lines(cfg Config, data []byte) ([]string, error) {
	var lines []string
	err := emitLines(cfg, data, func(line string) error {
		lines = append(lines, line)
		return nil
	})
	return lines, err
}

func emitLines(cfg Config, data []byte, emit func(string) error) error {
	w, err := NewWalker(cfg, data)
	if err != nil {
		return err
	}
	printer := printers.NewInstrPrinter(w.Version())
	if err := emit(printer.Header()); err != nil {
		return err
	}

	for {
		inst, err := w.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if cfg.Debug {
			if err := emit(fmt.Sprintf("; Offset 0x%X", inst.Offset)); err != nil {
				return err
			}
		}

		var line string
		if cfg.CommentBlocks && inst.Token.Opcode == d3d.OpComment {
			line = commentLine(data, inst)
		} else if line, err = printer.Render(inst); err != nil {
			w.log.Error(err)
			return err
		}
		if err := emit(line); err != nil {
			return err
		}

		if cfg.Dump {
			for _, l := range strings.Split(strings.TrimRight(dumper.Sdump(inst), "\n"), "\n") {
				if err := emit("; " + l); err != nil {
					return err
				}
			}
		}
	}
}

// commentLine describes a comment block by its FourCC tag when it has a printable one.
func commentLine(data []byte, inst *shader.Instruction) string {
	n := inst.Token.CommentSize()
	tag := memacc.NewBufferAccessor(data).Bytes(inst.Offset+memacc.WordSize, 4)
	if n > 0 && len(tag) == 4 && isPrintable(tag) {
		return fmt.Sprintf("; comment %s (%d dwords)", tag, n)
	}
	return fmt.Sprintf("; comment (%d dwords)", n)
}

func isPrintable(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7E {
			return false
		}
	}
	return true
}

func logger(cfg Config) common.Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return common.NewNoOpLogger()
}
