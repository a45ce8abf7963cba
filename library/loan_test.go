package library

import (
	"errors"
	"testing"
	"time"
)

var loanBase = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestLoan(t *testing.T, due time.Time) *Loan {
	t.Helper()
	loan, err := NewLoan("br_1", "978-1", "u1", loanBase, due)
	if err != nil {
		t.Fatalf("loan: %v", err)
	}
	return loan
}

func TestLoanDateInvariant(t *testing.T) {
	if _, err := NewLoan("br_1", "978-1", "u1", loanBase, loanBase); !errors.Is(err, ErrValidation) {
		t.Fatalf("due == borrow: want ErrValidation, got %v", err)
	}
	if _, err := NewLoan("br_1", "978-1", "u1", loanBase, loanBase.Add(-time.Hour)); !errors.Is(err, ErrValidation) {
		t.Fatalf("due before borrow: want ErrValidation, got %v", err)
	}

	loan := newTestLoan(t, loanBase.AddDate(0, 0, 14))
	// Both date setters re-apply the same ordering predicate.
	if err := loan.SetDueDate(loanBase); !errors.Is(err, ErrValidation) {
		t.Fatalf("SetDueDate at borrow: want ErrValidation, got %v", err)
	}
	if err := loan.SetBorrowDate(loan.DueDate()); !errors.Is(err, ErrValidation) {
		t.Fatalf("SetBorrowDate at due: want ErrValidation, got %v", err)
	}
	if err := loan.SetDueDate(loanBase.AddDate(0, 0, 21)); err != nil {
		t.Fatalf("extending due date: %v", err)
	}
}

func TestLoanLifecycle(t *testing.T) {
	due := loanBase.AddDate(0, 0, 7)
	loan := newTestLoan(t, due)

	if loan.IsReturned() {
		t.Fatalf("fresh loan should be active")
	}
	if loan.IsOverdue(due.Add(-time.Hour)) {
		t.Fatalf("loan before due should not be overdue")
	}
	if !loan.IsOverdue(due.Add(time.Hour)) {
		t.Fatalf("active loan past due should be overdue")
	}

	if err := loan.MarkReturned(loanBase.Add(-time.Hour)); !errors.Is(err, ErrValidation) {
		t.Fatalf("return before borrow: want ErrValidation, got %v", err)
	}

	returnedAt := due.Add(-time.Hour)
	if err := loan.MarkReturned(returnedAt); err != nil {
		t.Fatalf("return: %v", err)
	}
	if !loan.IsReturned() {
		t.Fatalf("loan should be returned")
	}
	if got, ok := loan.ReturnDate(); !ok || !got.Equal(returnedAt) {
		t.Fatalf("return date = %v, %t", got, ok)
	}
	// Returned on time, so overdue stays false no matter how late "now" is.
	if loan.IsOverdue(due.AddDate(0, 0, 30)) {
		t.Fatalf("on-time return must never become overdue")
	}
	// One-way transition.
	if err := loan.MarkReturned(returnedAt); !errors.Is(err, ErrValidation) {
		t.Fatalf("double return: want ErrValidation, got %v", err)
	}
}

func TestLoanDaysOverdue(t *testing.T) {
	due := loanBase.AddDate(0, 0, 7)

	cases := []struct {
		name string
		now  time.Time
		want int
	}{
		{"before due", due.Add(-time.Minute), 0},
		{"barely past due", due.Add(time.Hour), 0},
		{"one day", due.Add(25 * time.Hour), 1},
		{"partial days truncate", due.Add(3*24*time.Hour + 23*time.Hour), 3},
		{"ten days", due.Add(10 * 24 * time.Hour), 10},
	}
	for _, tc := range cases {
		loan := newTestLoan(t, due)
		if got := loan.DaysOverdue(tc.now); got != tc.want {
			t.Fatalf("%s: DaysOverdue = %d, want %d", tc.name, got, tc.want)
		}
	}

	// After return, the return date is the reference, not "now".
	loan := newTestLoan(t, due)
	if err := loan.MarkReturned(due.Add(5 * 24 * time.Hour)); err != nil {
		t.Fatalf("return: %v", err)
	}
	if got := loan.DaysOverdue(due.AddDate(1, 0, 0)); got != 5 {
		t.Fatalf("returned loan DaysOverdue = %d, want 5", got)
	}
}

func TestFineValidation(t *testing.T) {
	if _, err := NewFine("f1", "u1", "br_1", 0, "late"); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero amount: want ErrValidation, got %v", err)
	}
	if _, err := NewFine("f1", "u1", "br_1", -10, "late"); !errors.Is(err, ErrValidation) {
		t.Fatalf("negative amount: want ErrValidation, got %v", err)
	}
	if _, err := NewFine("f1", "u1", "br_1", 30, "  "); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank reason: want ErrValidation, got %v", err)
	}

	fine, err := NewFine("f1", "u1", "br_1", 30, "returned 3 days overdue")
	if err != nil {
		t.Fatalf("fine: %v", err)
	}
	if fine.Paid() {
		t.Fatalf("new fine should be unpaid")
	}
	if err := fine.SetAmount(-1); !errors.Is(err, ErrValidation) {
		t.Fatalf("SetAmount negative: want ErrValidation, got %v", err)
	}
	if fine.Amount() != 30 {
		t.Fatalf("rejected setter changed amount: %v", fine.Amount())
	}
	fine.MarkPaid()
	if !fine.Paid() {
		t.Fatalf("fine should be paid")
	}
}
