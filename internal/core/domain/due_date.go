package domain

import "time"

var paymentTermDays = map[PaymentTerms]int{
	DueOnReceipt: 0,
	Net15:        15,
	Net30:        30,
	Net60:        60,
}

// DueDate adds the days granted by terms to the issue date. Plain calendar
// arithmetic: no business days, no time-zone shifts. Unknown terms are
// treated like due-on-receipt.
func DueDate(issued time.Time, terms PaymentTerms) time.Time {
	return issued.AddDate(0, 0, paymentTermDays[terms])
}
