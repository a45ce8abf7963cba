// Package store persists catalog snapshots. Two backends exist: a
// SQLite database and a JSON snapshot file. Both speak the snapshot
// export/import shape of the library package and stay out of the domain
// rules entirely.
package store

import (
	"fmt"

	"github.com/rs/zerolog"

	"library-system/library"
)

// Store saves and loads whole catalog snapshots.
type Store interface {
	Save(snap *library.Snapshot) error
	Load() (*library.Snapshot, error)
	Close() error
}

// BuildCatalog turns a loaded snapshot into a catalog. With skipInvalid
// set, records that fail domain validation or reference resolution are
// logged and dropped while the rest of the batch goes through; otherwise
// the first bad record aborts the build.
func BuildCatalog(snap *library.Snapshot, skipInvalid bool, log zerolog.Logger) (*library.Catalog, error) {
	catalog, err := library.NewCatalog(snap.Name)
	if err != nil {
		return nil, err
	}
	if !skipInvalid {
		if err := catalog.Import(snap); err != nil {
			return nil, err
		}
		return catalog, nil
	}

	skip := func(kind, key string, err error) {
		log.Warn().Str("kind", kind).Str("key", key).Err(err).Msg("skipping invalid record")
	}

	for _, rec := range snap.Authors {
		author, err := library.ImportAuthor(rec)
		if err == nil {
			err = catalog.AddAuthor(author)
		}
		if err != nil {
			skip("author", rec.ID, err)
		}
	}
	for _, rec := range snap.Genres {
		genre, err := library.ImportGenre(rec)
		if err == nil {
			err = catalog.AddGenre(genre)
		}
		if err != nil {
			skip("genre", rec.Name, err)
		}
	}
	for _, rec := range snap.Publishers {
		pub, err := library.ImportPublisher(rec)
		if err == nil {
			err = catalog.AddPublisher(pub)
		}
		if err != nil {
			skip("publisher", rec.ID, err)
		}
	}

	authors := lookupByKey(catalog.Authors(), (*library.Author).ID)
	genres := lookupByKey(catalog.Genres(), (*library.Genre).Name)
	publishers := lookupByKey(catalog.Publishers(), (*library.Publisher).ID)

	for _, rec := range snap.Books {
		book, err := library.ImportBook(rec, authors, genres, publishers)
		if err == nil {
			err = catalog.AddBook(book)
		}
		if err != nil {
			skip("book", rec.ISBN, err)
		}
	}

	books := lookupByKey(catalog.Books(), (*library.Book).ISBN)

	for _, rec := range snap.Persons {
		person, err := library.ImportPerson(rec, books)
		if err == nil {
			err = catalog.AddPerson(person)
		}
		if err != nil {
			skip("person", rec.ID, err)
		}
	}

	persons := lookupByKey(catalog.Persons(), (*library.Person).ID)

	for _, rec := range snap.Loans {
		loan, err := library.ImportLoan(rec, books, persons)
		if err == nil {
			err = catalog.AddLoan(loan)
		}
		if err != nil {
			skip("loan", rec.ID, err)
		}
	}

	loans := lookupByKey(catalog.Loans(), (*library.Loan).ID)

	for _, rec := range snap.Fines {
		fine, err := library.ImportFine(rec, persons, loans)
		if err == nil {
			err = catalog.AddFine(fine)
		}
		if err != nil {
			skip("fine", rec.ID, err)
		}
	}
	for _, rec := range snap.Reservations {
		res, err := library.ImportReservation(rec, persons, books)
		if err == nil {
			err = catalog.AddReservation(res)
		}
		if err != nil {
			skip("reservation", rec.ID, err)
		}
	}
	for _, rec := range snap.Reviews {
		review, err := library.ImportReview(rec, persons, books)
		if err == nil {
			err = catalog.AddReview(review)
		}
		if err != nil {
			skip("review", rec.ID, err)
		}
	}
	return catalog, nil
}

func lookupByKey[T any](items []T, key func(T) string) map[string]T {
	m := make(map[string]T, len(items))
	for _, item := range items {
		m[key(item)] = item
	}
	return m
}

// SaveCatalog exports the catalog and writes it to the store.
func SaveCatalog(s Store, catalog *library.Catalog) error {
	if err := s.Save(catalog.Export()); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}
