package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/user/moovie-ingest/internal/model"
	"gorm.io/gorm"
)

// SQLITE_CONSTRAINT_DATATYPE，STRICT 表写入类型不符时返回
var sqliteConstraintDatatype = sqlite3.ErrConstraint.Extend(12)

// Classify 根据驱动返回的错误码判断错误分类，不依赖错误信息文本
func Classify(err error) model.ErrorKind {
	if err == nil {
		return model.KindOther
	}
	if kind := model.KindOf(err); kind != model.KindOther {
		return kind
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return model.KindAlreadyExists
		case "23514": // check_violation
			return model.KindInvalidDomainValue
		case "22P02", "22003", "42804": // invalid_text_representation, numeric_value_out_of_range, datatype_mismatch
			return model.KindTypeMismatch
		}
		return model.KindOther
	}

	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) {
		switch sqErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return model.KindAlreadyExists
		case sqlite3.ErrConstraintCheck:
			return model.KindInvalidDomainValue
		case sqliteConstraintDatatype:
			return model.KindTypeMismatch
		}
		if sqErr.Code == sqlite3.ErrMismatch {
			return model.KindTypeMismatch
		}
		return model.KindOther
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return model.KindAlreadyExists
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return model.KindInvalidDomainValue
	}
	return model.KindOther
}

// wrap 给存储错误加上分类与上下文
func wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return model.NewError(Classify(err), err, format, args...)
}
