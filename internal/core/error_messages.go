// Package core provides the conversion logic for line-oriented data files.
//
// # Error Codes Reference
//
// Every failure the converter can report maps to a user-facing message with
// a code, so a terminal line or an HTTP error body can be quoted back.
//
//	ARG001  - Missing argument: no input file was given
//	CFG001  - Missing configuration: a descriptor file does not exist
//	CFG002  - Malformed configuration: a descriptor could not be decoded,
//	          or "campos" is absent or empty
//	STR001  - Unknown strategy: "tipo" names no registered strategy
//	ENC001  - Unknown encoding: "codificacion" names no supported encoding
//	FILE001 - Read failure: the input file could not be read
//	FILE002 - Write failure: the output file could not be written
//	BUSY001 - Busy: every conversion slot stayed taken for the queue wait
//	ERR000  - Anything else
//
// Matching uses errors.Is, so call sites wrap the sentinels with %w and keep
// the technical detail in the chain.
package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for the conversion failure taxonomy.
var (
	ErrMissingArgument   = errors.New("missing argument")
	ErrMissingConfigFile = errors.New("missing configuration file")
	ErrMalformedConfig   = errors.New("malformed configuration")
	ErrUnknownStrategy   = errors.New("unknown strategy")
	ErrUnknownEncoding   = errors.New("unknown encoding")
	ErrFileRead          = errors.New("file read failure")
	ErrFileWrite         = errors.New("file write failure")
	ErrBusy              = errors.New("too many conversions in progress")
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorKind ties a sentinel to its user message.
type errorKind struct {
	target error
	msg    UserMessage
}

// errorKinds is checked in order; the first sentinel found in the chain wins.
var errorKinds = []errorKind{
	{
		target: ErrMissingArgument,
		msg: UserMessage{
			Message: "No input file was given",
			Action:  "Usage: convertidor <archivo_datos.txt>",
			Code:    "ARG001",
		},
	},
	{
		target: ErrMissingConfigFile,
		msg: UserMessage{
			Message: "A configuration file is missing",
			Action:  "Create formato-entrada.json and encabezado-tabla.json in the working directory",
			Code:    "CFG001",
		},
	},
	{
		target: ErrMalformedConfig,
		msg: UserMessage{
			Message: "A configuration file is invalid",
			Action:  "Check the JSON syntax and that 'campos' is a non-empty list",
			Code:    "CFG002",
		},
	},
	{
		target: ErrUnknownStrategy,
		msg: UserMessage{
			Message: "The configured strategy is not defined",
			Action:  "Set 'tipo' in formato-entrada.json to KEY_VALUE or SEQUENTIAL",
			Code:    "STR001",
		},
	},
	{
		target: ErrUnknownEncoding,
		msg: UserMessage{
			Message: "The configured text encoding is not supported",
			Action:  "Use an encoding such as utf-8 or latin1",
			Code:    "ENC001",
		},
	},
	{
		target: ErrFileRead,
		msg: UserMessage{
			Message: "The input file could not be read",
			Action:  "Check that the path exists and is readable",
			Code:    "FILE001",
		},
	},
	{
		target: ErrFileWrite,
		msg: UserMessage{
			Message: "The output file could not be written",
			Action:  "Check permissions and free space in the output directory",
			Code:    "FILE002",
		},
	},
	{
		target: ErrBusy,
		msg: UserMessage{
			Message: "The converter is busy",
			Action:  "Retry the request in a few seconds",
			Code:    "BUSY001",
		},
	},
}

// defaultMessage is returned when no sentinel matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Check the logs for details",
	Code:    "ERR000",
}

// MapError converts an error to a user-friendly message.
// Returns the zero UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			return k.msg
		}
	}

	return defaultMessage
}

// FormatUserError renders the single terminal line for err.
// The format is: "Message (Code: XXX): detail. Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s): %v. %s", msg.Message, msg.Code, err, msg.Action)
}

// IsUserFacing reports whether err maps to a known code rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
