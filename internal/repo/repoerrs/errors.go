package repoerrs

import "errors"

var ErrInvalidPath = errors.New("log path escapes category root")
