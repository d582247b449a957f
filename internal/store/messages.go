package store

// messages.go maps internal errors onto user-facing messages with short codes
// users can quote when asking for help.
//
//	GUA404 - record or attachment absent; retry or navigate back to the list
//	NET001 - request could not reach the intake API
//	NET002 - the intake API answered with a failure status
//	GEN001 - anything unclassified

import "errors"

// UserMessage is a user-friendly rendering of an error.
type UserMessage struct {
	Message string
	Action  string
	Code    string
}

// MapError converts an error from any Client operation into a UserMessage.
func MapError(err error) UserMessage {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return UserMessage{
			Message: "The requested " + nf.Resource + " could not be found.",
			Action:  "It may have been removed. Refresh the list and try again.",
			Code:    "GUA404",
		}
	}

	var te *TransportError
	if errors.As(err, &te) {
		if te.StatusCode != 0 {
			return UserMessage{
				Message: "The server could not complete the request.",
				Action:  "Please try again in a few moments.",
				Code:    "NET002",
			}
		}
		return UserMessage{
			Message: "Could not reach the server.",
			Action:  "Check your connection and try again.",
			Code:    "NET001",
		}
	}

	return UserMessage{
		Message: err.Error(),
		Action:  "Please try again.",
		Code:    "GEN001",
	}
}
