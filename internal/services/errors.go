package services

import (
	"errors"
	"fmt"
)

// 服务协调相关错误
var (
	ErrUnknownService = errors.New("服务未注册")
	ErrUnknownConn    = errors.New("连接未注册")
)

// StageError 表示流水线某个阶段的失败，携带失败阶段标识
type StageError struct {
	Stage Stage // 失败的阶段
	Err   error // 底层错误
}

func (e *StageError) Error() string {
	return fmt.Sprintf("阶段 %s 处理失败: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// newStageError 包装阶段错误
func newStageError(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}
