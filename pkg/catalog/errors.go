package catalog

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/quakepy/qcat/pkg/errcode"
)

func parseError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.XMLParseError,
		Msg:  "Cannot parse XML document",
		Err:  fmt.Errorf("from %s: cannot parse document: %w", fn, err),
	}
}

func declarationError() error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.XMLDeclarationError,
		Msg:  "Document does not start with an XML declaration",
		Err:  fmt.Errorf("from %s: missing xml declaration", fn),
	}
}

func rootTagError(tag string) error {
	msg := "Unrecognized root element <em>%s</em>"
	vars := []any{tag}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.XMLRootTagError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: unrecognized root element %q",
			fn, tag),
	}
}

func timeSpanError(size int) error {
	msg := "Catalog with %d events has no timed origins"
	vars := []any{size}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogTimeSpanError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: no timed origins in %d events",
			fn, size),
	}
}
