package iodb

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/quakepy/qcat/pkg/errcode"
)

func ConnectionError(host string, port int, database, user string,
	err error) error {
	msg := "Cannot connect to <em>%s:%d/%s</em> as <em>%s</em>"
	vars := []any{host, port, database, user}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot connect to %s:%d/%s: %w",
			fn, host, port, database, err),
	}
}

func NotConnectedError() error {
	msg := "Archive database is not connected"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: not connected", fn),
	}
}

func TableCheckError(err error) error {
	msg := "Cannot check archive tables"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot check tables: %w", fn, err),
	}
}

func CopyError(table string, err error) error {
	msg := "Bulk load into <em>%s</em> failed"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBCopyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: copy into %s: %w", fn, table, err),
	}
}

func DropTableError(table string, err error) error {
	msg := "Cannot drop table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot drop %s: %w", fn, table, err),
	}
}

func GORMConnectionError(database string, err error) error {
	msg := "Cannot open GORM connection to <em>%s</em>"
	vars := []any{database}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: gorm open %s: %w",
			fn, database, err),
	}
}

func SchemaCreateError(err error) error {
	msg := "Cannot create archive schema"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: create schema: %w", fn, err),
	}
}

func SchemaMigrateError(err error) error {
	msg := "Cannot migrate archive schema"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: migrate schema: %w", fn, err),
	}
}
