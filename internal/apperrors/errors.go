package apperrors

import (
	"errors"
)

var ErrShutdown = errors.New("shutdown error")
