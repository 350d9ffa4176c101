package webhook

type Result string

const (
	ResultHandled Result = "handled"
	ResultIgnored Result = "ignored"
	// ResultAccepted means the delivery was queued for asynchronous processing.
	ResultAccepted Result = "accepted"
)

const (
	ReasonUnsupportedEvent = "unsupported event"
	ReasonNotSubscription  = "payment is not linked to a subscription"
	ReasonAlreadyPaid      = "order does not need payment"
	ReasonOrderPaid        = "order paid"
	ReasonOrderFailed      = "order payment failed"
	ReasonFullyPaid        = "subscription fully paid"
	ReasonRenewalPaid      = "subscription renewal paid"
	ReasonRenewalFailed    = "subscription renewal failed"
	ReasonCountMismatch    = "renewal count mismatch"
	ReasonQueued           = "queued"
)

// Outcome describes how a delivery was resolved when no error occurred.
type Outcome struct {
	Result Result `json:"result"`
	Reason string `json:"reason"`
}

func handled(reason string) Outcome {
	return Outcome{Result: ResultHandled, Reason: reason}
}

func ignored(reason string) Outcome {
	return Outcome{Result: ResultIgnored, Reason: reason}
}

func Accepted() Outcome {
	return Outcome{Result: ResultAccepted, Reason: ReasonQueued}
}
