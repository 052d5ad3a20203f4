package treeseq

import (
	"fmt"
	"strings"
)

// MetadataError reports a metadata codec failure, attached to the table and
// row (or insertion attempt) it occurred on. Decode failures never abort an
// iteration; encode failures abort the insertion they belong to.
type MetadataError struct {
	Table string
	Row   int32 // -1 on the insertion path, before an id is assigned
	Op    string
	Err   error
}

func metadataErrf(table string, row int32, op string, err error) error {
	return &MetadataError{Table: table, Row: row, Op: op, Err: err}
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}

func (e *MetadataError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("%s: metadata %s: %v", e.Table, e.Op, e.Err)
	}
	return fmt.Sprintf("%s/%d: metadata %s: %v", e.Table, e.Row, e.Op, e.Err)
}

// IntegrityError reports a failed integrity check.
type IntegrityError struct {
	Table string
	Row   int32 // -1 when the failure is not tied to a single row
	Msg   string
}

func integrityErrf(table string, row int32, format string, args ...any) error {
	return &IntegrityError{Table: table, Row: row, Msg: fmt.Sprintf(format, args...)}
}

func (e *IntegrityError) Error() string {
	var buf strings.Builder
	buf.WriteString(e.Table)
	if e.Row >= 0 {
		fmt.Fprintf(&buf, "/%d", e.Row)
	}
	buf.WriteString(": ")
	buf.WriteString(e.Msg)
	return buf.String()
}

// FileError reports a Dump or Load failure, wrapping the storage or codec
// error with the file path and the table being processed.
type FileError struct {
	Path  string
	Table string
	Err   error
}

func fileErrf(path, table string, err error) error {
	return &FileError{Path: path, Table: table, Err: err}
}

func (e *FileError) Unwrap() error {
	return e.Err
}

func (e *FileError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s: table %s: %v", e.Path, e.Table, e.Err)
}
