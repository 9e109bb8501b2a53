package hexdump

import "errors"

var (
	ErrOptions = errors.New("invalid dump options")
	ErrSeek    = errors.New("seek failed")
	ErrRead    = errors.New("read failed")
	ErrWrite   = errors.New("write failed")
)
