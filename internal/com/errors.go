package com

import "errors"

var (
	ErrOutOfRange      = errors.New("com: handle out of range")
	ErrNoUpdate        = errors.New("com: no update since last read")
	ErrUnsupportedType = errors.New("com: unsupported signal type")
	ErrBufferTooSmall  = errors.New("com: buffer too small")
	ErrInactive        = errors.New("com: group inactive")
)
