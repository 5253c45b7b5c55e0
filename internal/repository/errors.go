package repository

import "github.com/pkg/errors"

var (
	// ErrNotFound 写入时目标文档已不存在
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate 违反唯一索引
	ErrDuplicate = errors.New("duplicate record")
)
