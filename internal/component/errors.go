package component

import "errors"

var (
	ErrContainerFull              = errors.New("container full")
	ErrReferenceFull              = errors.New("reference full")
	ErrInvalidObjectType          = errors.New("invalid object type")
	ErrInvalidEventSink           = errors.New("invalid event sink")
	ErrEventSinkAlreadySubscribed = errors.New("event sink already subscribed")
	ErrEventSinkNotSubscribed     = errors.New("event sink not subscribed")
	ErrExecutionFailed            = errors.New("execution failed")
)
