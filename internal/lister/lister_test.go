package lister

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sm3dis/internal/common"
	"sm3dis/internal/d3d"
	"sm3dis/internal/shader"
	"sm3dis/tests/helpers"
)

func sampleVertexShader() *helpers.Program {
	return helpers.VertexShader(3, 0).
		Op(31, 2).Word(helpers.DclToken(0, 0)).Dst(helpers.Input, 0, 0xF).
		Op(31, 2).Word(helpers.DclToken(0, 0)).Dst(helpers.Output, 0, 0xF).
		Op(81, 5).Dst(helpers.Const, 4, 0xF).Float(1, 0, 0, 1).
		Op(9, 3).Dst(helpers.Output, 0, 0x1).Src(helpers.Input, 0, 0xE4).Src(helpers.Const, 0, 0xE4).
		Op(1, 2).Dst(helpers.Output, 0, 0xE).Src(helpers.Const, 4, 0xE4).
		End()
}

func TestLinesMinimal(t *testing.T) {
	prog := helpers.VertexShader(3, 0).
		Op(1, 2).Dst(helpers.Temp, 0, 0xF).Src(helpers.Input, 0, 0xE4).
		End()
	got, err := Lines(Config{}, prog.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"vs_3_0", "mov r0, v0", "end"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Lines mismatch (-want +got):\n%s", diff)
	}
}

func TestLinesSample(t *testing.T) {
	got, err := Lines(Config{}, sampleVertexShader().Bytes())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"vs_3_0",
		"dcl_position0 v0",
		"dcl_position0 o0",
		"def c4, 1.000000, 0.000000, 0.000000, 1.000000",
		"dp4 o0.x, v0, c0",
		"mov o0.yzw, c4",
		"end",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Lines mismatch (-want +got):\n%s", diff)
	}
}

func TestLinesDebugOffsets(t *testing.T) {
	prog := helpers.PixelShader(2, 0).
		Op(1, 2).Dst(helpers.Temp, 0, 0xF).Src(helpers.Texture, 0, 0xE4).
		Op(1, 2).Dst(helpers.ColorOut, 0, 0xF).Src(helpers.Temp, 0, 0xE4).
		End()
	got, err := Lines(Config{Debug: true}, prog.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"ps_2_0",
		"; Offset 0x4", "mov r0, t0",
		"; Offset 0x10", "mov oC0, r0",
		"; Offset 0x1C", "end",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Lines mismatch (-want +got):\n%s", diff)
	}
}

func TestLinesStopAtEnd(t *testing.T) {
	// Anything after END is never decoded, even an unknown opcode.
	prog := helpers.VertexShader(3, 0).End().Op(200, 0)
	got, err := Lines(Config{}, prog.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"vs_3_0", "end"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestLinesNoEnd(t *testing.T) {
	prog := helpers.VertexShader(2, 0).Op(0, 0)
	got, err := Lines(Config{}, prog.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"vs_2_0", "nop"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	got, err = Lines(Config{}, helpers.PixelShader(3, 0).Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"ps_3_0"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestLinesUnknownOpcode(t *testing.T) {
	prog := helpers.VertexShader(3, 0).
		Op(1, 2).Dst(helpers.Temp, 0, 0xF).Src(helpers.Input, 0, 0xE4).
		Op(200, 0)
	got, err := Lines(Config{}, prog.Bytes())
	if !errors.Is(err, common.ErrUnknownOpcode) {
		t.Fatalf("err = %v, want ErrUnknownOpcode", err)
	}
	var derr *common.Error
	if !errors.As(err, &derr) || derr.Offset != 16 {
		t.Errorf("error = %+v, want offset 16", derr)
	}
	if diff := cmp.Diff([]string{"vs_3_0", "mov r0, v0"}, got); diff != "" {
		t.Errorf("partial output (-want +got):\n%s", diff)
	}
}

func TestLinesErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want common.Err
	}{
		{"empty", nil, common.ErrUnexpectedEOS},
		{"short header", []byte{0x00, 0x03}, common.ErrUnexpectedEOS},
		{"bad header", []byte{0x00, 0x03, 0x00, 0x00}, common.ErrMalformedHeader},
		{"truncated operands", helpers.VertexShader(3, 0).Op(4, 4).Dst(helpers.Temp, 0, 0xF).Bytes(), common.ErrUnexpectedEOS},
		{"trailing bytes", append(helpers.VertexShader(3, 0).Bytes(), 0x01, 0x00), common.ErrUnexpectedEOS},
		{"misc in vertex", helpers.VertexShader(3, 0).Op(1, 2).Dst(helpers.Temp, 0, 0xF).Src(helpers.Misc, 0, 0xE4).Bytes(),
			common.ErrUnknownRegister},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lines(Config{}, tt.data)
			if got := common.CodeOf(err); got != tt.want {
				t.Errorf("CodeOf(%v) = %v, want %v", err, got, tt.want)
			}
		})
	}
}

func TestRunWritesPartialOutput(t *testing.T) {
	prog := helpers.VertexShader(3, 0).
		Op(1, 2).Dst(helpers.Temp, 0, 0xF).Src(helpers.Input, 0, 0xE4).
		Op(200, 0)
	var buf bytes.Buffer
	err := Run(Config{OutputWriter: &buf}, prog.Bytes())
	if err == nil {
		t.Fatal("expected an error")
	}
	if got, want := buf.String(), "vs_3_0\nmov r0, v0\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestCommentBlocks(t *testing.T) {
	comment := func(n uint32) uint32 { return 0xFFFE | n<<16 }
	prog := helpers.VertexShader(3, 0).
		Word(comment(3)).Word(0x42415443, 0, 0). // "CTAB"
		Op(1, 2).Dst(helpers.Temp, 0, 0xF).Src(helpers.Input, 0, 0xE4).
		End()

	got, err := Lines(Config{CommentBlocks: true}, prog.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"vs_3_0", "; comment CTAB (3 dwords)", "mov r0, v0", "end"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	// Without comment sizing the length field decides, so the payload is misread.
	got, _ = Lines(Config{}, prog.Bytes())
	if len(got) < 2 || got[1] != "comment" {
		t.Errorf("plain listing = %q", got)
	}
}

func TestDump(t *testing.T) {
	prog := helpers.VertexShader(3, 0).Op(1, 2).Dst(helpers.Temp, 0, 0xF).Src(helpers.Input, 0, 0xE4).End()
	got, err := Lines(Config{Dump: true}, prog.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if got[1] != "mov r0, v0" {
		t.Fatalf("line 1 = %q", got[1])
	}
	var dumped []string
	for _, l := range got[2:] {
		if l == "end" {
			break
		}
		if !strings.HasPrefix(l, "; ") {
			t.Errorf("dump line %q is not a comment", l)
		}
		dumped = append(dumped, l)
	}
	text := strings.Join(dumped, "\n")
	for _, want := range []string{"shader.Instruction", "Mnemonic", "\"mov\""} {
		if !strings.Contains(text, want) {
			t.Errorf("dump does not mention %s:\n%s", want, text)
		}
	}
}

func TestWalker(t *testing.T) {
	w, err := NewWalker(Config{}, sampleVertexShader().Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if w.Version().String() != "vs_3_0" {
		t.Errorf("Version() = %s", w.Version())
	}

	var offsets []int
	for {
		inst, err := w.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		offsets = append(offsets, inst.Offset)
	}
	if diff := cmp.Diff([]int{4, 16, 28, 52, 68, 80}, offsets); diff != "" {
		t.Errorf("offsets (-want +got):\n%s", diff)
	}
	if _, err := w.Next(); err != io.EOF {
		t.Errorf("Next after done = %v, want io.EOF", err)
	}
}

func TestWalkCallbackError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	_, err := Walk(Config{}, sampleVertexShader().Bytes(), func(*shader.Instruction) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Errorf("err = %v, calls = %d", err, calls)
	}
}

func TestDebugLogging(t *testing.T) {
	var logBuf bytes.Buffer
	cfg := Config{Logger: common.NewStdLoggerWithWriter(&logBuf, common.SeverityDebug)}
	if _, err := Lines(cfg, helpers.VertexShader(3, 0).End().Bytes()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(logBuf.String(), "vs_3_0") || !strings.Contains(logBuf.String(), "end") {
		t.Errorf("debug log = %q", logBuf.String())
	}
}

// Every opcode is built with exactly the operand words its shape declares. Decoding must read
// the whole instruction and the walker must land on the following END.
func TestEveryOpcodeAdvancesBySize(t *testing.T) {
	for _, op := range d3d.Opcodes() {
		if op == d3d.OpTexM3x3Diff {
			continue
		}
		desc, _ := d3d.LookupOpcode(op)
		shape := desc.Shape

		t.Run(desc.Mnemonic, func(t *testing.T) {
			prog := helpers.PixelShader(3, 0).Op(uint16(op), shape.Words())
			if shape.Decl {
				prog.Word(helpers.DclToken(0, 0))
			}
			if shape.Dst {
				prog.Dst(helpers.Temp, 0, 0xF)
			}
			for i := 0; i < shape.Imm.Words(); i++ {
				prog.Word(0)
			}
			for i := 0; i < shape.Srcs; i++ {
				prog.Src(helpers.Temp, i, 0xE4)
			}
			if op != d3d.OpEnd {
				prog.End()
			}

			w, err := NewWalker(Config{}, prog.Bytes())
			if err != nil {
				t.Fatal(err)
			}
			inst, err := w.Next()
			if err != nil {
				t.Fatalf("Next: %v", err)
			}
			wantSize := 4 * (shape.Words() + 1)
			if inst.Size() != wantSize || inst.Consumed() != wantSize {
				t.Errorf("Size() = %d, Consumed() = %d, want %d", inst.Size(), inst.Consumed(), wantSize)
			}
			if op == d3d.OpEnd {
				if _, err := w.Next(); err != io.EOF {
					t.Errorf("Next after end = %v, want io.EOF", err)
				}
				return
			}

			end, err := w.Next()
			if err != nil {
				t.Fatalf("Next: %v", err)
			}
			if !end.Token.IsEnd() || end.Offset != 4+wantSize {
				t.Errorf("next instruction %s at 0x%X, want end at 0x%X", end.Mnemonic(), end.Offset, 4+wantSize)
			}
		})
	}
}
