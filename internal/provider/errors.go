package provider

import "errors"

var (
	// ErrRefusal is returned when OpenAI refuses to answer
	ErrRefusal = errors.New("OpenAI refused to answer")
	// ErrInvalidMessageType is returned for output items no mapper understands
	ErrInvalidMessageType = errors.New("Invalid message type")
	// ErrNoAnswer is returned when a response carries neither text nor a tool call
	ErrNoAnswer = errors.New("No answer")
	// ErrUnknownVendor is returned by the registry for unregistered vendors
	ErrUnknownVendor = errors.New("unknown vendor")
)
