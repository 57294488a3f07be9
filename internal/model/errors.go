package model

import (
	"errors"
	"fmt"
)

// ErrorKind 采集过程中的错误分类
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindAlreadyExists
	KindTypeMismatch
	KindAmbiguousIdentity
	KindInvalidDomainValue
)

func (k ErrorKind) String() string {
	switch k {
	case KindAlreadyExists:
		return "already-exists"
	case KindTypeMismatch:
		return "type-mismatch"
	case KindAmbiguousIdentity:
		return "ambiguous-identity"
	case KindInvalidDomainValue:
		return "invalid-domain-value"
	default:
		return "other"
	}
}

// IngestError 带分类的错误
type IngestError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *IngestError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *IngestError) Unwrap() error { return e.Err }

// NewError 创建分类错误
func NewError(kind ErrorKind, err error, format string, args ...any) *IngestError {
	return &IngestError{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf 返回错误链上第一个 IngestError 的分类，没有则为 KindOther
func KindOf(err error) ErrorKind {
	var ie *IngestError
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return KindOther
}

// IsKind 判断错误是否属于指定分类
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
