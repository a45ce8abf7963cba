package library

import (
	"errors"
	"testing"
	"time"
)

var resBase = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestReservationDateInvariant(t *testing.T) {
	if _, err := NewReservation("res_1", "u1", "978-1", resBase, resBase); !errors.Is(err, ErrValidation) {
		t.Fatalf("expiry == reservation: want ErrValidation, got %v", err)
	}
	if _, err := NewReservation("res_1", "u1", "978-1", resBase, resBase.Add(-time.Hour)); !errors.Is(err, ErrValidation) {
		t.Fatalf("expiry before reservation: want ErrValidation, got %v", err)
	}

	res, err := NewReservation("res_1", "u1", "978-1", resBase, resBase.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("reservation: %v", err)
	}
	if err := res.SetExpiryDate(resBase); !errors.Is(err, ErrValidation) {
		t.Fatalf("SetExpiryDate at reservation date: want ErrValidation, got %v", err)
	}
	if err := res.SetReservationDate(res.ExpiryDate()); !errors.Is(err, ErrValidation) {
		t.Fatalf("SetReservationDate at expiry: want ErrValidation, got %v", err)
	}
}

func TestReservationLifecycle(t *testing.T) {
	expiry := resBase.AddDate(0, 0, 7)
	res, err := NewReservation("res_1", "u1", "978-1", resBase, expiry)
	if err != nil {
		t.Fatalf("reservation: %v", err)
	}

	if !res.IsActive(resBase.Add(time.Hour)) {
		t.Fatalf("fresh reservation should be active")
	}

	// Cancelled stays inactive regardless of expiry.
	res.Cancel()
	if res.IsActive(resBase.Add(time.Hour)) {
		t.Fatalf("cancelled reservation must not be active")
	}

	// The flag and expiry are independent: reactivating before expiry works...
	res.Reactivate()
	if !res.IsActive(resBase.Add(time.Hour)) {
		t.Fatalf("reactivated reservation should be active before expiry")
	}
	// ...but the flag cannot beat the clock.
	if res.IsActive(expiry.Add(time.Second)) {
		t.Fatalf("expired reservation must not be active")
	}
	if !res.IsExpired(expiry.Add(time.Second)) {
		t.Fatalf("IsExpired should be true past expiry")
	}
}

func TestReservationDaysUntilExpiry(t *testing.T) {
	expiry := resBase.AddDate(0, 0, 7)
	res, _ := NewReservation("res_1", "u1", "978-1", resBase, expiry)

	if got := res.DaysUntilExpiry(resBase); got != 7 {
		t.Fatalf("DaysUntilExpiry = %d, want 7", got)
	}
	// Partial days truncate.
	if got := res.DaysUntilExpiry(resBase.Add(36 * time.Hour)); got != 5 {
		t.Fatalf("DaysUntilExpiry = %d, want 5", got)
	}
	// Not active (cancelled or expired) means 0.
	res.Cancel()
	if got := res.DaysUntilExpiry(resBase); got != 0 {
		t.Fatalf("cancelled DaysUntilExpiry = %d, want 0", got)
	}
	res.Reactivate()
	if got := res.DaysUntilExpiry(expiry.Add(time.Hour)); got != 0 {
		t.Fatalf("expired DaysUntilExpiry = %d, want 0", got)
	}
}

func TestReviewValidation(t *testing.T) {
	for _, rating := range []int{0, -1, 6} {
		if _, err := NewReview("rev_1", "u1", "978-1", rating, "", time.Time{}); !errors.Is(err, ErrValidation) {
			t.Fatalf("rating %d: want ErrValidation, got %v", rating, err)
		}
	}

	when := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	rev, err := NewReview("rev_1", "u1", "978-1", 4, "great", when)
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if !rev.ReviewDate().Equal(when) {
		t.Fatalf("review date = %v", rev.ReviewDate())
	}
	if err := rev.SetRating(9); !errors.Is(err, ErrValidation) {
		t.Fatalf("SetRating out of range: want ErrValidation, got %v", err)
	}
	if rev.Rating() != 4 {
		t.Fatalf("rejected setter changed rating: %d", rev.Rating())
	}

	// A zero review date stays zero until the catalog stamps it.
	rev2, err := NewReview("rev_2", "u1", "978-1", 3, "", time.Time{})
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if !rev2.ReviewDate().IsZero() {
		t.Fatalf("unstamped review date = %v, want zero", rev2.ReviewDate())
	}
}

func TestSentiment(t *testing.T) {
	cases := []struct {
		rating int
		want   Sentiment
	}{
		{1, SentimentNegative},
		{2, SentimentNegative},
		{3, SentimentNeutral},
		{4, SentimentPositive},
		{5, SentimentPositive},
	}
	for _, tc := range cases {
		if got := ClassifyRating(tc.rating); got != tc.want {
			t.Fatalf("ClassifyRating(%d) = %s, want %s", tc.rating, got, tc.want)
		}
	}
}
