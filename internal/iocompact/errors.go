package iocompact

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/quakepy/qcat/pkg/errcode"
)

func OpenStoreError(path string, err error) error {
	msg := "Cannot open compact store <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CompactStoreError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open %s: %w", fn, path, err),
	}
}

func SaveStoreError(path string, err error) error {
	msg := "Cannot save compact catalog to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CompactStoreError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot save to %s: %w", fn, path, err),
	}
}

func LoadStoreError(path string, err error) error {
	msg := "Cannot load compact catalog from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CompactStoreError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot load from %s: %w",
			fn, path, err),
	}
}
