package calculator

import "errors"

var ErrNotEnoughData = errors.New("not enough data")
