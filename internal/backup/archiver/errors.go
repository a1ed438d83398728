package archiver

import "fmt"

// Operations reported in TableError.
const (
	OpCount  = "count"
	OpRead   = "read"
	OpEncode = "encode"
	OpWrite  = "write"
	OpDecode = "decode"
	OpInsert = "insert"
)

// TableError reports the table and the step at which an export or import failed.
type TableError struct {
	Table string
	Op    string
	Err   error
}

func (e *TableError) Error() string {
	return fmt.Sprintf("table %s: %s: %v", e.Table, e.Op, e.Err)
}

func (e *TableError) Unwrap() error { return e.Err }
