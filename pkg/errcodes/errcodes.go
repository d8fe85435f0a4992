package errcodes

import "craft_market/pkg/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	RunNotFound           failure.ErrorCode = "RunNotFound"
	RunAlreadyCompleted   failure.ErrorCode = "RunAlreadyCompleted"
	DayRecordNotFound     failure.ErrorCode = "DayRecordNotFound"
	InvalidRunID          failure.ErrorCode = "InvalidRunID"
	InvalidRunConfig      failure.ErrorCode = "InvalidRunConfig"
	InvalidParticipant    failure.ErrorCode = "InvalidParticipant"
	InvalidDecision       failure.ErrorCode = "InvalidDecision"
	DecisionNotAwaited    failure.ErrorCode = "DecisionNotAwaited"
	ParticipantNotHuman   failure.ErrorCode = "ParticipantNotHuman"
	UnknownResource       failure.ErrorCode = "UnknownResource"
	UnknownProduct        failure.ErrorCode = "UnknownProduct"
	UnknownProviderKind   failure.ErrorCode = "UnknownProviderKind"
)
