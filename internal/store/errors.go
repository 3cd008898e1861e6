package store

import "errors"

var (
	ErrTradeNotFound = errors.New("trade not found")
	ErrCorruptRecord = errors.New("corrupt trade record")
)
