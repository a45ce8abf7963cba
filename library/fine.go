package library

// Fine is a monetary penalty attached to a person and the loan that
// caused it. Amount is strictly positive; paying is one-way.
type Fine struct {
	id       string
	personID string
	loanID   string
	amount   float64
	reason   string
	paid     bool
}

func NewFine(id, personID, loanID string, amount float64, reason string) (*Fine, error) {
	f := &Fine{}
	trimmedID, err := requireText("fine id", id)
	if err != nil {
		return nil, err
	}
	trimmedPerson, err := requireText("person id", personID)
	if err != nil {
		return nil, err
	}
	trimmedLoan, err := requireText("loan id", loanID)
	if err != nil {
		return nil, err
	}
	f.id = trimmedID
	f.personID = trimmedPerson
	f.loanID = trimmedLoan
	if err := f.SetAmount(amount); err != nil {
		return nil, err
	}
	if err := f.SetReason(reason); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Fine) ID() string       { return f.id }
func (f *Fine) PersonID() string { return f.personID }
func (f *Fine) LoanID() string   { return f.loanID }
func (f *Fine) Amount() float64  { return f.amount }
func (f *Fine) Reason() string   { return f.reason }
func (f *Fine) Paid() bool       { return f.paid }

func (f *Fine) SetAmount(amount float64) error {
	if amount <= 0 {
		return validationf("fine amount must be positive, got %v", amount)
	}
	f.amount = amount
	return nil
}

func (f *Fine) SetReason(reason string) error {
	trimmed, err := requireText("fine reason", reason)
	if err != nil {
		return err
	}
	f.reason = trimmed
	return nil
}

// MarkPaid settles the fine.
func (f *Fine) MarkPaid() { f.paid = true }
