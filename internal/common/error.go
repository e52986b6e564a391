package common

import (
	"errors"
	"fmt"
	"strings"
)

// Err is a disassembler error code. Err values are usable as errors.Is targets.
type Err uint32

const (
	OK                 Err = 0
	ErrMalformedHeader Err = 1
	ErrUnknownOpcode   Err = 2
	ErrUnexpectedEOS   Err = 3
	ErrInvalidRelative Err = 4
	ErrUnknownRegister Err = 5
	ErrInvalidDecl     Err = 6
	ErrInvalidModifier Err = 7
	ErrLast            Err = 8
)

// NoOffset marks an error that is not tied to a stream position.
const NoOffset = -1

type errDesc struct {
	name string
	msg  string
}

var errorCodeDesc = map[Err]errDesc{
	OK:                 {"OK", "No Error."},
	ErrMalformedHeader: {"MALFORMED_HEADER", "Version token is not a vertex or pixel shader signature."},
	ErrUnknownOpcode:   {"UNKNOWN_OPCODE", "Opcode not present in the registry."},
	ErrUnexpectedEOS:   {"UNEXPECTED_EOS", "Read past the end of the bytecode stream."},
	ErrInvalidRelative: {"INVALID_RELATIVE", "Relative address register is neither aL nor a#."},
	ErrUnknownRegister: {"UNKNOWN_REGISTER", "Register type has no name for this shader kind."},
	ErrInvalidDecl:     {"INVALID_DECL", "Declaration usage or sampler type out of range."},
	ErrInvalidModifier: {"INVALID_MODIFIER", "Source modifier out of range."},
	ErrLast:            {"LAST", "No error - error code end marker"},
}

// Error returns the description of the code alone.
func (e Err) Error() string {
	if desc, ok := errorCodeDesc[e]; ok {
		return desc.msg
	}
	return fmt.Sprintf("unknown error 0x%04x", uint32(e))
}

// Name returns the short upper-case name of the code, e.g. UNKNOWN_OPCODE.
func (e Err) Name() string {
	if desc, ok := errorCodeDesc[e]; ok {
		return desc.name
	}
	return "UNKNOWN"
}

// Codes lists every defined code in numeric order, OK included and ErrLast excluded.
func Codes() []Err {
	codes := make([]Err, 0, ErrLast)
	for c := OK; c < ErrLast; c++ {
		codes = append(codes, c)
	}
	return codes
}

// Error is a fatal decode failure at a position in the bytecode.
type Error struct {
	Code    Err
	Offset  int
	Message string
}

func NewErrorAtMsg(code Err, offset int, msg string) *Error {
	return &Error{Code: code, Offset: offset, Message: msg}
}

// Errorf builds an offset-tagged error with a formatted message.
func Errorf(code Err, offset int, format string, args ...any) *Error {
	return NewErrorAtMsg(code, offset, fmt.Sprintf(format, args...))
}

// Error implements the standard error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("ERROR:0x%04x ", uint32(e.Code)))

	if desc, ok := errorCodeDesc[e.Code]; ok {
		sb.WriteString(fmt.Sprintf("(%s) [%s]; ", desc.name, desc.msg))
	} else {
		sb.WriteString("(unknown); ")
	}

	if e.Offset != NoOffset {
		sb.WriteString(fmt.Sprintf("Offset=0x%X; ", e.Offset))
	}

	sb.WriteString(e.Message)
	return sb.String()
}

// Unwrap exposes the code so errors.Is(err, common.ErrUnknownOpcode) works.
func (e *Error) Unwrap() error {
	return e.Code
}

// CodeOf returns the code carried by err, or ErrLast when err is not a decode error.
func CodeOf(err error) Err {
	if err == nil {
		return OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var code Err
	if errors.As(err, &code) {
		return code
	}
	return ErrLast
}
