package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// 四类错误均不可恢复：本次运行直接中止
var (
	ErrMissingSheet    = errors.New("missing sheet")
	ErrLookupFailure   = errors.New("lookup failure")
	ErrProductNotFound = errors.New("product not found")
	ErrFormat          = errors.New("format error")
)

// ErrorKind 错误类别
type ErrorKind string

const (
	KindMissingSheet    ErrorKind = "missing_sheet"
	KindLookupFailure   ErrorKind = "lookup_failure"
	KindProductNotFound ErrorKind = "product_not_found"
	KindFormat          ErrorKind = "format_error"
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindMissingSheet:
		return ErrMissingSheet
	case KindLookupFailure:
		return ErrLookupFailure
	case KindProductNotFound:
		return ErrProductNotFound
	case KindFormat:
		return ErrFormat
	}
	return nil
}

// Error 流水线错误，携带触发错误的工作表 / 产品 / 列
type Error struct {
	Kind    ErrorKind
	Sheet   string
	Product string
	Column  string
	Value   string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	if s := e.Kind.sentinel(); s != nil {
		b.WriteString(s.Error())
	} else {
		b.WriteString(string(e.Kind))
	}

	var where []string
	if e.Sheet != "" {
		where = append(where, fmt.Sprintf("sheet %q", e.Sheet))
	}
	if e.Product != "" {
		where = append(where, fmt.Sprintf("product %q", e.Product))
	}
	if e.Column != "" {
		where = append(where, fmt.Sprintf("column %q", e.Column))
	}
	if e.Value != "" {
		where = append(where, fmt.Sprintf("value %q", e.Value))
	}
	if len(where) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(where, ", "))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is 使 errors.Is(err, ErrFormat) 等判断成立
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf 返回错误类别，非流水线错误返回空串
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

func missingSheet(sheet string) *Error {
	return &Error{Kind: KindMissingSheet, Sheet: sheet}
}

func lookupFailure(sheet, column string) *Error {
	return &Error{Kind: KindLookupFailure, Sheet: sheet, Column: column}
}

func productNotFound(sheet, product string) *Error {
	return &Error{Kind: KindProductNotFound, Sheet: sheet, Product: product}
}

func formatError(sheet, column, value string, cause error) *Error {
	return &Error{Kind: KindFormat, Sheet: sheet, Column: column, Value: value, Err: cause}
}

// withSheet 为尚未标注工作表的错误补上表名
func withSheet(err error, sheet string) error {
	var pe *Error
	if errors.As(err, &pe) && pe.Sheet == "" {
		pe.Sheet = sheet
	}
	return err
}

// NewMissingSheet 工作簿中缺少必需工作表
func NewMissingSheet(sheet string) error {
	return missingSheet(sheet)
}

// NewProductNotFound 产品不在指定工作表中
func NewProductNotFound(sheet, product string) error {
	return productNotFound(sheet, product)
}
