package winauth

import "errors"

var (
	// ErrInvalidConfig is returned by [Builder.Build] when the configuration
	// or the registered collaborators cannot produce a working manager. It is
	// a setup-time failure; the application must not start.
	ErrInvalidConfig = errors.New("invalid winauth configuration")

	// ErrInvalidUserName is returned by [Manager.CreateSession] when the
	// supplied user name is empty.
	ErrInvalidUserName = errors.New("user name empty")

	// ErrExecution wraps any failure inside the session store, the credential
	// validator, or the role provider during an otherwise normal operation.
	// It is never one of the deny outcomes; the middleware surfaces it as a
	// generic server error.
	ErrExecution = errors.New("winauth execution failure")
)
