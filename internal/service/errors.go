package service

import "errors"

// ErrPersistence wraps store failures. Its detail is for server logs only;
// callers should surface a generic failure.
var ErrPersistence = errors.New("persistence failure")
