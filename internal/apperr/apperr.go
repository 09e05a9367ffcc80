// Package apperr 定义核心层对外暴露的错误分类。
// 调用方用 errors.Is 区分错误种类，再决定渲染 404 还是 403 等。
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation 必填字段为空或输入非法
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate 唯一性约束冲突（用户名、分类名）
	ErrDuplicate = errors.New("duplicate record")
	// ErrNotFound 引用的实体不存在
	ErrNotFound = errors.New("record not found")
	// ErrForbidden 无权执行该操作
	ErrForbidden = errors.New("operation forbidden")
	// ErrLedger 积分账本事务失败，触发动作应一并回滚
	ErrLedger = errors.New("credit ledger failure")
)

// Validationf 构造带说明的校验错误
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Duplicatef 构造带说明的唯一性冲突错误
func Duplicatef(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrDuplicate, fmt.Sprintf(format, args...))
}

// NotFoundf 构造带说明的未找到错误
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Forbiddenf 构造带说明的鉴权错误
func Forbiddenf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}

// Ledger 包装底层存储错误为账本错误
func Ledger(err error) error {
	return fmt.Errorf("%w: %v", ErrLedger, err)
}
