package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures so callers can branch on the kind of error
// without matching message text.
var (
	ErrTagValidation = goerr.NewTag("validation")
	ErrTagConfig     = goerr.NewTag("config")
	ErrTagNotFound   = goerr.NewTag("not_found")
	ErrTagNotReady   = goerr.NewTag("not_ready")
	ErrTagDuplicate  = goerr.NewTag("duplicate")
	ErrTagCommand    = goerr.NewTag("command")
)
