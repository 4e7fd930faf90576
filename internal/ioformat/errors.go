package ioformat

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/quakepy/qcat/pkg/errcode"
)

func unknownFormatError(name string) error {
	msg := "Unknown catalog format <em>%s</em>"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FormatLineError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown format %q", fn, name),
	}
}

func headerError(lineNo int, line string) error {
	msg := "Illegal bulletin header in line <em>%d</em>"
	vars := []any{lineNo}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FormatHeaderError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: illegal header line %d: %s",
			fn, lineNo, line),
	}
}

func tokenCountError(lineNo, count int) error {
	msg := "Unexpected token count <em>%d</em> in line <em>%d</em>"
	vars := []any{count, lineNo}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FormatTokenCountError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: unexpected token count %d in line %d",
			fn, count, lineNo),
	}
}

func phaseOrphanError(lineNo int) error {
	msg := "Phase line <em>%d</em> has no event to attach to"
	vars := []any{lineNo}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FormatPhaseOrphanError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: phase line %d without preceding event",
			fn, lineNo),
	}
}

func lineError(lineNo int, line string) error {
	msg := "Malformed record in line <em>%d</em>"
	vars := []any{lineNo}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FormatLineError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: malformed record in line %d: %s",
			fn, lineNo, line),
	}
}

func writeError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  "Cannot write catalog data",
		Err:  fmt.Errorf("from %s: cannot write: %w", fn, err),
	}
}

func sequenceError(lineNo int, line string) error {
	msg := "No valid sequence number in line <em>%d</em>"
	vars := []any{lineNo}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FormatLineError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: no valid sequence number in line %d: %s",
			fn, lineNo, line),
	}
}
