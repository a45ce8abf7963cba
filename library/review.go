package library

import "time"

// Sentiment classifies a review rating.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// ClassifyRating maps a rating to a sentiment: 4 and up is positive,
// 2 and below negative, 3 neutral.
func ClassifyRating(rating int) Sentiment {
	switch {
	case rating >= 4:
		return SentimentPositive
	case rating <= 2:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// Review is a rating in [1, 5] with an optional comment, left by a person
// for a book.
type Review struct {
	id         string
	personID   string
	bookISBN   string
	rating     int
	comment    string
	reviewDate time.Time
}

// NewReview validates the rating bounds. A zero reviewDate is allowed;
// the catalog stamps it with its clock when the review is added.
func NewReview(id, personID, bookISBN string, rating int, comment string, reviewDate time.Time) (*Review, error) {
	r := &Review{}
	trimmedID, err := requireText("review id", id)
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
	r.id = trimmedID
	r.personID = trimmedPerson
	r.bookISBN = trimmedISBN
	if err := r.SetRating(rating); err != nil {
		return nil, err
	}
	r.SetComment(comment)
	r.reviewDate = reviewDate
	return r, nil
}

func (r *Review) ID() string            { return r.id }
func (r *Review) PersonID() string      { return r.personID }
func (r *Review) BookISBN() string      { return r.bookISBN }
func (r *Review) Rating() int           { return r.rating }
func (r *Review) Comment() string       { return r.comment }
func (r *Review) ReviewDate() time.Time { return r.reviewDate }

func (r *Review) SetRating(rating int) error {
	if rating < 1 || rating > 5 {
		return validationf("rating must be in [1, 5], got %d", rating)
	}
	r.rating = rating
	return nil
}

func (r *Review) SetComment(comment string) {
	r.comment = comment
}

// Sentiment classifies this review's rating.
func (r *Review) Sentiment() Sentiment {
	return ClassifyRating(r.rating)
}
