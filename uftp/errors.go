package uftp

import "fmt"

// FunctionalError is a business-level rejection of an otherwise
// well-formed message. When a service handler returns one, the incoming
// message is answered with a response message carrying Result=Rejected
// and the error's RejectionReason. The reason strings are fixed by the
// Shapeshifter specification.
type FunctionalError struct {
	// RejectionReason is copied verbatim into the response message.
	RejectionReason string
}

func (e *FunctionalError) Error() string {
	return fmt.Sprintf("uftp: rejected: %s", e.RejectionReason)
}

// ErrInvalidMessage rejects a schema-compliant message whose syntax,
// type or semantics are unacceptable for the receiving implementation.
func ErrInvalidMessage(kind Kind) *FunctionalError {
	return &FunctionalError{RejectionReason: fmt.Sprintf("Invalid Message: '%s'", kind)}
}

// ErrConnectionConflict rejects a connection that was previously
// registered at another congestion point.
func ErrConnectionConflict(connection, congestionPoint string) *FunctionalError {
	return &FunctionalError{
		RejectionReason: fmt.Sprintf("Connection conflict: %s at %s", connection, congestionPoint),
	}
}

// The fixed-reason functional rejections from the Shapeshifter
// specification.
var (
	// ErrInvalidSender signals a mismatch between the SenderDomain/Role
	// combination on the envelope and the inner XML message.
	ErrInvalidSender = &FunctionalError{RejectionReason: "Invalid Sender"}

	// ErrUnknownRecipient signals that the RecipientDomain of the inner
	// message is not handled by this endpoint.
	ErrUnknownRecipient = &FunctionalError{RejectionReason: "Unknown Recipient"}

	// ErrBarredSender signals that this endpoint explicitly blocks
	// messages from this sender.
	ErrBarredSender = &FunctionalError{RejectionReason: "Barred Sender"}

	// ErrDuplicateIdentifier signals a reused MessageID with different
	// content than the original.
	ErrDuplicateIdentifier = &FunctionalError{RejectionReason: "Duplicate Identifier"}

	// ErrAlreadySubmitted signals a reused MessageID whose content is
	// identical to a previously accepted message.
	ErrAlreadySubmitted = &FunctionalError{RejectionReason: "Already Submitted"}

	// ErrISPDurationRejected signals an ISP duration that is not the
	// agreed-upon common value for the market.
	ErrISPDurationRejected = &FunctionalError{RejectionReason: "ISP Duration Rejected"}

	// ErrTimeZoneRejected signals a time zone with a different UTC
	// offset than the agreed-upon common value for the market.
	ErrTimeZoneRejected = &FunctionalError{RejectionReason: "TimeZone Rejected"}

	// ErrInvalidCongestionPoint signals an unknown congestion point, or
	// one the recipient is not active at.
	ErrInvalidCongestionPoint = &FunctionalError{RejectionReason: "Invalid Congestion Point"}

	// ErrUnknownReference signals that a referenced message sequence is
	// unknown.
	ErrUnknownReference = &FunctionalError{RejectionReason: "Unknown Reference"}

	// ErrReferencePeriodMismatch signals that the referenced message
	// carries a different Period.
	ErrReferencePeriodMismatch = &FunctionalError{RejectionReason: "Reference Period Mismatch"}

	// ErrReferenceMessageExpired signals that the referenced message has
	// expired.
	ErrReferenceMessageExpired = &FunctionalError{RejectionReason: "Reference Message Expired"}

	// ErrReferenceMessageRevoked signals that the referenced message was
	// revoked.
	ErrReferenceMessageRevoked = &FunctionalError{RejectionReason: "Reference Message Revoked"}

	// ErrISPsOutOfBounds signals ISP indexes outside the tolerated
	// boundaries.
	ErrISPsOutOfBounds = &FunctionalError{RejectionReason: "ISPs Out Of Bounds"}

	// ErrISPConflict signals ISPs defined more than once, possibly due
	// to an incorrect duration.
	ErrISPConflict = &FunctionalError{RejectionReason: "ISP Conflict"}

	// ErrPeriodOutOfBounds signals an inappropriate Period, such as a
	// FlexRequest for a day in the past.
	ErrPeriodOutOfBounds = &FunctionalError{RejectionReason: "Period Out Of Bounds"}

	// ErrExpirationOutOfBounds signals an ExpirationDateTime in the past
	// or beyond the ISPs in the message.
	ErrExpirationOutOfBounds = &FunctionalError{RejectionReason: "Expiration DateTime Out Of Bounds"}

	// ErrUnauthorized signals a CRO operating in closed mode rejecting a
	// participant that is not pre-registered.
	ErrUnauthorized = &FunctionalError{RejectionReason: "Unauthorized"}

	// ErrSubordinateSequenceNumber signals a message sequence lower than
	// that of a previously received portfolio update.
	ErrSubordinateSequenceNumber = &FunctionalError{RejectionReason: "Subordinate Sequence Number"}
)
