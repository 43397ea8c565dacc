package apperror

import "errors"

var (
	ErrInvalidCell     = errors.New("invalid cell index")
	ErrInvalidStep     = errors.New("invalid history step")
	ErrScoreNotFound   = errors.New("score not found")
	ErrMalformedScore  = errors.New("malformed score record")
	ErrUnknownStorage  = errors.New("unknown storage driver")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrInvalidArgument = errors.New("invalid argument")
)
