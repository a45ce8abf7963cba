package library

import "time"

// Reservation is a time-bounded hold on a book for a person. The active
// flag toggles via Cancel/Reactivate; expiry is derived from the clock,
// never stored. A reservation counts as active only while the flag is set
// and the expiry date has not passed.
type Reservation struct {
	id              string
	personID        string
	bookISBN        string
	reservationDate time.Time
	expiryDate      time.Time
	active          bool
}

// NewReservation validates that expiryDate is strictly later than
// reservationDate. New reservations start active.
func NewReservation(id, personID, bookISBN string, reservationDate, expiryDate time.Time) (*Reservation, error) {
	trimmedID, err := requireText("reservation id", id)
	if err != nil {
		return nil, err
	}
	trimmedPerson, err := requireText("person id", personID)
	if err != nil {
		return nil, err
	}
	trimmedISBN, err := requireText("book isbn", bookISBN)
	if err != nil {
		return nil, err
	}
	if err := checkDateOrder("reservation date", "expiry date", reservationDate, expiryDate); err != nil {
		return nil, err
	}
	return &Reservation{
		id:              trimmedID,
		personID:        trimmedPerson,
		bookISBN:        trimmedISBN,
		reservationDate: reservationDate,
		expiryDate:      expiryDate,
		active:          true,
	}, nil
}

func (r *Reservation) ID() string                 { return r.id }
func (r *Reservation) PersonID() string           { return r.personID }
func (r *Reservation) BookISBN() string           { return r.bookISBN }
func (r *Reservation) ReservationDate() time.Time { return r.reservationDate }
func (r *Reservation) ExpiryDate() time.Time      { return r.expiryDate }

func (r *Reservation) SetReservationDate(reservationDate time.Time) error {
	if err := checkDateOrder("reservation date", "expiry date", reservationDate, r.expiryDate); err != nil {
		return err
	}
	r.reservationDate = reservationDate
	return nil
}

func (r *Reservation) SetExpiryDate(expiryDate time.Time) error {
	if err := checkDateOrder("reservation date", "expiry date", r.reservationDate, expiryDate); err != nil {
		return err
	}
	r.expiryDate = expiryDate
	return nil
}

// Cancel clears the active flag regardless of expiry.
func (r *Reservation) Cancel() { r.active = false }

// Reactivate sets the flag again; the reservation is still inactive if
// expired.
func (r *Reservation) Reactivate() { r.active = true }

// IsExpired reports whether now is past the expiry date.
func (r *Reservation) IsExpired(now time.Time) bool {
	return now.After(r.expiryDate)
}

// IsActive reports whether the flag is set and the hold has not expired.
func (r *Reservation) IsActive(now time.Time) bool {
	return r.active && !r.IsExpired(now)
}

// DaysUntilExpiry returns the whole days until expiry, 0 when the
// reservation is not active. Clamped so an active hold never reports a
// negative count.
func (r *Reservation) DaysUntilExpiry(now time.Time) int {
	if !r.IsActive(now) {
		return 0
	}
	days := int(r.expiryDate.Sub(now) / (24 * time.Hour))
	if days < 0 {
		return 0
	}
	return days
}
