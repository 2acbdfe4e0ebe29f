package client

import "google.golang.org/protobuf/proto"

// ResultStatus reports the outcome of one service API call. Message is empty
// whenever IsError is false and non-empty whenever it is true.
type ResultStatus struct {
	IsError bool
	Message string
}

// RegisterProviderApiResult wraps the outcome of a registerProvider call.
// Exactly one of Response and Status.IsError is populated: Response carries
// the raw wire response on success and is nil on every failure.
type RegisterProviderApiResult struct {
	Status   ResultStatus
	Response proto.Message
}

// errorResult builds a failure envelope with the given message.
func errorResult(message string) *RegisterProviderApiResult {
	return &RegisterProviderApiResult{
		Status: ResultStatus{IsError: true, Message: message},
	}
}

// outcomeKind tags the classification of a raw RPC response.
type outcomeKind int

const (
	outcomeSuccess outcomeKind = iota
	outcomeBusinessError
	outcomeMalformed
)

// callOutcome is the tagged result of classifying one raw response. It is
// produced only by the per-method classification functions.
type callOutcome struct {
	kind     outcomeKind
	message  string
	response proto.Message
}

func successOutcome(response proto.Message) callOutcome {
	return callOutcome{kind: outcomeSuccess, response: response}
}

func businessErrorOutcome(message string) callOutcome {
	return callOutcome{kind: outcomeBusinessError, message: message}
}

// malformedResponseMessage is reported verbatim when a response matches
// neither expected payload shape.
const malformedResponseMessage = "Unexpected response format: neither exceptionalResult nor registrationResult found"

func malformedOutcome() callOutcome {
	return callOutcome{kind: outcomeMalformed, message: malformedResponseMessage}
}

// apiResult folds the outcome into the caller-facing envelope.
func (o callOutcome) apiResult() *RegisterProviderApiResult {
	if o.kind == outcomeSuccess {
		return &RegisterProviderApiResult{Response: o.response}
	}
	return errorResult(o.message)
}
