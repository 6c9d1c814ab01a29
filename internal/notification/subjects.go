package notification

const (
	subjectDealWonFmt   = "Deal won: %s"
	subjectDealLostFmt  = "Deal lost: %s"
	subjectDealReopened = "Deal reopened"
	subjectFollowUpDue  = "Deal follow-up due"
)
