package compact

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/quakepy/qcat/pkg/errcode"
)

func IllegalColumnError(column string) error {
	msg := "Illegal compact column <em>%s</em>"
	vars := []any{column}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CompactColumnError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: illegal column %q", fn, column),
	}
}

func ColumnMismatchError(added, existing []string) error {
	msg := "Added columns %v do not match existing columns %v"
	vars := []any{added, existing}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CompactColumnError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: columns %v do not match %v",
			fn, added, existing),
	}
}

func HeaderError(line int, reason string) error {
	msg := "Compact header problem on line %d: %s"
	vars := []any{line, reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CompactHeaderError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: header problem on line %d: %s",
			fn, line, reason),
	}
}

func RowWidthError(line, got, want int) error {
	msg := "Line %d has %d fields, expected %d"
	vars := []any{line, got, want}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CompactColumnError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: line %d has %d fields, want %d",
			fn, line, got, want),
	}
}

func RowValueError(line int, token string, err error) error {
	msg := "Cannot parse <em>%s</em> on line %d"
	vars := []any{token, line}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CompactColumnError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot parse %q on line %d: %w",
			fn, token, line, err),
	}
}

func ReadError(err error) error {
	msg := "Cannot read compact catalog"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CompactHeaderError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot read: %w", fn, err),
	}
}

func WriteError(err error) error {
	msg := "Cannot write compact catalog"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CompactHeaderError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot write: %w", fn, err),
	}
}
