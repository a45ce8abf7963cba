package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"library-system/library"
)

// SQLite persists snapshots into a normalized SQLite database, one table
// per entity kind plus join tables for book authors and borrowed books.
// Save replaces the whole database content in a single transaction; Load
// reads it back preserving insertion order via the rowid sequence.
type SQLite struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSQLite opens (or creates) the database at dbPath and applies schema
// migrations.
func NewSQLite(dbPath string, log zerolog.Logger) (*SQLite, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	// Enable busy_timeout and foreign keys.
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db, log: log}, nil
}

// Close closes the database.
func (s *SQLite) Close() error { return s.db.Close() }

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	// WAL improves write concurrency.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS authors (
            seq INTEGER PRIMARY KEY AUTOINCREMENT,
            id TEXT NOT NULL UNIQUE,
            name TEXT NOT NULL,
            birth_year INTEGER,
            country TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE TABLE IF NOT EXISTS genres (
            seq INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL UNIQUE,
            description TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE TABLE IF NOT EXISTS publishers (
            seq INTEGER PRIMARY KEY AUTOINCREMENT,
            id TEXT NOT NULL UNIQUE,
            name TEXT NOT NULL,
            location TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE TABLE IF NOT EXISTS books (
            seq INTEGER PRIMARY KEY AUTOINCREMENT,
            isbn TEXT NOT NULL UNIQUE,
            title TEXT NOT NULL,
            genre TEXT NOT NULL REFERENCES genres(name),
            publisher_id TEXT NOT NULL REFERENCES publishers(id),
            year INTEGER NOT NULL,
            pages INTEGER
        );`,
		`CREATE TABLE IF NOT EXISTS book_authors (
            book_isbn TEXT NOT NULL REFERENCES books(isbn),
            author_id TEXT NOT NULL REFERENCES authors(id),
            position INTEGER NOT NULL,
            PRIMARY KEY (book_isbn, author_id)
        );`,
		`CREATE TABLE IF NOT EXISTS persons (
            seq INTEGER PRIMARY KEY AUTOINCREMENT,
            id TEXT NOT NULL UNIQUE,
            name TEXT NOT NULL,
            password_hash TEXT NOT NULL DEFAULT '',
            staff_employee_id TEXT,
            staff_position TEXT
        );`,
		`CREATE TABLE IF NOT EXISTS person_borrowed (
            person_id TEXT NOT NULL REFERENCES persons(id),
            book_isbn TEXT NOT NULL,
            position INTEGER NOT NULL,
            PRIMARY KEY (person_id, book_isbn)
        );`,
		`CREATE TABLE IF NOT EXISTS loans (
            seq INTEGER PRIMARY KEY AUTOINCREMENT,
            id TEXT NOT NULL UNIQUE,
            book_isbn TEXT NOT NULL,
            person_id TEXT NOT NULL,
            borrow_date DATETIME NOT NULL,
            due_date DATETIME NOT NULL,
            return_date DATETIME
        );`,
		`CREATE TABLE IF NOT EXISTS fines (
            seq INTEGER PRIMARY KEY AUTOINCREMENT,
            id TEXT NOT NULL UNIQUE,
            person_id TEXT NOT NULL,
            loan_id TEXT NOT NULL,
            amount REAL NOT NULL,
            reason TEXT NOT NULL,
            paid BOOLEAN NOT NULL DEFAULT 0
        );`,
		`CREATE TABLE IF NOT EXISTS reservations (
            seq INTEGER PRIMARY KEY AUTOINCREMENT,
            id TEXT NOT NULL UNIQUE,
            person_id TEXT NOT NULL,
            book_isbn TEXT NOT NULL,
            reservation_date DATETIME NOT NULL,
            expiry_date DATETIME NOT NULL,
            active BOOLEAN NOT NULL DEFAULT 1
        );`,
		`CREATE TABLE IF NOT EXISTS reviews (
            seq INTEGER PRIMARY KEY AUTOINCREMENT,
            id TEXT NOT NULL UNIQUE,
            person_id TEXT NOT NULL,
            book_isbn TEXT NOT NULL,
            rating INTEGER NOT NULL,
            comment TEXT NOT NULL DEFAULT '',
            review_date DATETIME NOT NULL
        );`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}

	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Save
// ---------------------------------------------------------------------------

var snapshotTables = []string{
	"book_authors", "person_borrowed", "reviews", "reservations",
	"fines", "loans", "persons", "books", "publishers", "genres", "authors",
}

// Save replaces all stored rows with the snapshot's content in one
// transaction.
func (s *SQLite) Save(snap *library.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range snapshotTables {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('library_name',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, snap.Name); err != nil {
		return err
	}

	for _, rec := range snap.Authors {
		if _, err := tx.Exec(`INSERT INTO authors(id,name,birth_year,country) VALUES(?,?,?,?)`,
			rec.ID, rec.Name, rec.BirthYear, rec.Country); err != nil {
			return fmt.Errorf("insert author %q: %w", rec.ID, err)
		}
	}
	for _, rec := range snap.Genres {
		if _, err := tx.Exec(`INSERT INTO genres(name,description) VALUES(?,?)`,
			rec.Name, rec.Description); err != nil {
			return fmt.Errorf("insert genre %q: %w", rec.Name, err)
		}
	}
	for _, rec := range snap.Publishers {
		if _, err := tx.Exec(`INSERT INTO publishers(id,name,location) VALUES(?,?,?)`,
			rec.ID, rec.Name, rec.Location); err != nil {
			return fmt.Errorf("insert publisher %q: %w", rec.ID, err)
		}
	}
	for _, rec := range snap.Books {
		if _, err := tx.Exec(`INSERT INTO books(isbn,title,genre,publisher_id,year,pages) VALUES(?,?,?,?,?,?)`,
			rec.ISBN, rec.Title, rec.Genre, rec.PublisherID, rec.Year, rec.Pages); err != nil {
			return fmt.Errorf("insert book %q: %w", rec.ISBN, err)
		}
		for i, aid := range rec.AuthorIDs {
			if _, err := tx.Exec(`INSERT INTO book_authors(book_isbn,author_id,position) VALUES(?,?,?)`,
				rec.ISBN, aid, i); err != nil {
				return fmt.Errorf("insert book author %q/%q: %w", rec.ISBN, aid, err)
			}
		}
	}
	for _, rec := range snap.Persons {
		var empID, pos any
		if rec.Staff != nil {
			empID, pos = rec.Staff.EmployeeID, rec.Staff.Position
		}
		if _, err := tx.Exec(`INSERT INTO persons(id,name,password_hash,staff_employee_id,staff_position) VALUES(?,?,?,?,?)`,
			rec.ID, rec.Name, rec.PasswordHash, empID, pos); err != nil {
			return fmt.Errorf("insert person %q: %w", rec.ID, err)
		}
		for i, isbn := range rec.Borrowed {
			if _, err := tx.Exec(`INSERT INTO person_borrowed(person_id,book_isbn,position) VALUES(?,?,?)`,
				rec.ID, isbn, i); err != nil {
				return fmt.Errorf("insert borrowed %q/%q: %w", rec.ID, isbn, err)
			}
		}
	}
	for _, rec := range snap.Loans {
		if _, err := tx.Exec(`INSERT INTO loans(id,book_isbn,person_id,borrow_date,due_date,return_date) VALUES(?,?,?,?,?,?)`,
			rec.ID, rec.BookISBN, rec.PersonID, rec.BorrowDate, rec.DueDate, rec.ReturnDate); err != nil {
			return fmt.Errorf("insert loan %q: %w", rec.ID, err)
		}
	}
	for _, rec := range snap.Fines {
		if _, err := tx.Exec(`INSERT INTO fines(id,person_id,loan_id,amount,reason,paid) VALUES(?,?,?,?,?,?)`,
			rec.ID, rec.PersonID, rec.LoanID, rec.Amount, rec.Reason, rec.Paid); err != nil {
			return fmt.Errorf("insert fine %q: %w", rec.ID, err)
		}
	}
	for _, rec := range snap.Reservations {
		if _, err := tx.Exec(`INSERT INTO reservations(id,person_id,book_isbn,reservation_date,expiry_date,active) VALUES(?,?,?,?,?,?)`,
			rec.ID, rec.PersonID, rec.BookISBN, rec.ReservationDate, rec.ExpiryDate, rec.Active); err != nil {
			return fmt.Errorf("insert reservation %q: %w", rec.ID, err)
		}
	}
	for _, rec := range snap.Reviews {
		if _, err := tx.Exec(`INSERT INTO reviews(id,person_id,book_isbn,rating,comment,review_date) VALUES(?,?,?,?,?,?)`,
			rec.ID, rec.PersonID, rec.BookISBN, rec.Rating, rec.Comment, rec.ReviewDate); err != nil {
			return fmt.Errorf("insert review %q: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.log.Debug().Int("books", len(snap.Books)).Int("persons", len(snap.Persons)).Msg("snapshot saved")
	return nil
}

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

// Load reads the stored snapshot back, each kind in its original
// insertion order.
func (s *SQLite) Load() (*library.Snapshot, error) {
	snap := &library.Snapshot{Name: "Library"}
	var name string
	if err := s.db.QueryRow(`SELECT value FROM meta WHERE key='library_name'`).Scan(&name); err == nil && name != "" {
		snap.Name = name
	}

	rows, err := s.db.Query(`SELECT id,name,birth_year,country FROM authors ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var rec library.AuthorRecord
		var birthYear sql.NullInt64
		if err := rows.Scan(&rec.ID, &rec.Name, &birthYear, &rec.Country); err != nil {
			return nil, err
		}
		if birthYear.Valid {
			y := int(birthYear.Int64)
			rec.BirthYear = &y
		}
		snap.Authors = append(snap.Authors, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.loadGenres(snap); err != nil {
		return nil, err
	}
	if err := s.loadPublishers(snap); err != nil {
		return nil, err
	}
	if err := s.loadBooks(snap); err != nil {
		return nil, err
	}
	if err := s.loadPersons(snap); err != nil {
		return nil, err
	}
	if err := s.loadLoans(snap); err != nil {
		return nil, err
	}
	if err := s.loadFines(snap); err != nil {
		return nil, err
	}
	if err := s.loadReservations(snap); err != nil {
		return nil, err
	}
	if err := s.loadReviews(snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *SQLite) loadGenres(snap *library.Snapshot) error {
	rows, err := s.db.Query(`SELECT name,description FROM genres ORDER BY seq`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var rec library.GenreRecord
		if err := rows.Scan(&rec.Name, &rec.Description); err != nil {
			return err
		}
		snap.Genres = append(snap.Genres, rec)
	}
	return rows.Err()
}

func (s *SQLite) loadPublishers(snap *library.Snapshot) error {
	rows, err := s.db.Query(`SELECT id,name,location FROM publishers ORDER BY seq`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var rec library.PublisherRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Location); err != nil {
			return err
		}
		snap.Publishers = append(snap.Publishers, rec)
	}
	return rows.Err()
}

func (s *SQLite) loadBooks(snap *library.Snapshot) error {
	rows, err := s.db.Query(`SELECT isbn,title,genre,publisher_id,year,pages FROM books ORDER BY seq`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var rec library.BookRecord
		var pages sql.NullInt64
		if err := rows.Scan(&rec.ISBN, &rec.Title, &rec.Genre, &rec.PublisherID, &rec.Year, &pages); err != nil {
			return err
		}
		if pages.Valid {
			p := int(pages.Int64)
			rec.Pages = &p
		}
		snap.Books = append(snap.Books, rec)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range snap.Books {
		arows, err := s.db.Query(`SELECT author_id FROM book_authors WHERE book_isbn=? ORDER BY position`, snap.Books[i].ISBN)
		if err != nil {
			return err
		}
		for arows.Next() {
			var aid string
			if err := arows.Scan(&aid); err != nil {
				arows.Close()
				return err
			}
			snap.Books[i].AuthorIDs = append(snap.Books[i].AuthorIDs, aid)
		}
		if err := arows.Err(); err != nil {
			arows.Close()
			return err
		}
		arows.Close()
	}
	return nil
}

func (s *SQLite) loadPersons(snap *library.Snapshot) error {
	rows, err := s.db.Query(`SELECT id,name,password_hash,staff_employee_id,staff_position FROM persons ORDER BY seq`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var rec library.PersonRecord
		var empID, pos sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.PasswordHash, &empID, &pos); err != nil {
			return err
		}
		if empID.Valid {
			rec.Staff = &library.StaffRecord{EmployeeID: empID.String, Position: pos.String}
		}
		snap.Persons = append(snap.Persons, rec)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range snap.Persons {
		brows, err := s.db.Query(`SELECT book_isbn FROM person_borrowed WHERE person_id=? ORDER BY position`, snap.Persons[i].ID)
		if err != nil {
			return err
		}
		for brows.Next() {
			var isbn string
			if err := brows.Scan(&isbn); err != nil {
				brows.Close()
				return err
			}
			snap.Persons[i].Borrowed = append(snap.Persons[i].Borrowed, isbn)
		}
		if err := brows.Err(); err != nil {
			brows.Close()
			return err
		}
		brows.Close()
	}
	return nil
}

func (s *SQLite) loadLoans(snap *library.Snapshot) error {
	rows, err := s.db.Query(`SELECT id,book_isbn,person_id,borrow_date,due_date,return_date FROM loans ORDER BY seq`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var rec library.LoanRecord
		var returned sql.NullTime
		if err := rows.Scan(&rec.ID, &rec.BookISBN, &rec.PersonID, &rec.BorrowDate, &rec.DueDate, &returned); err != nil {
			return err
		}
		if returned.Valid {
			t := returned.Time
			rec.ReturnDate = &t
		}
		snap.Loans = append(snap.Loans, rec)
	}
	return rows.Err()
}

func (s *SQLite) loadFines(snap *library.Snapshot) error {
	rows, err := s.db.Query(`SELECT id,person_id,loan_id,amount,reason,paid FROM fines ORDER BY seq`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var rec library.FineRecord
		if err := rows.Scan(&rec.ID, &rec.PersonID, &rec.LoanID, &rec.Amount, &rec.Reason, &rec.Paid); err != nil {
			return err
		}
		snap.Fines = append(snap.Fines, rec)
	}
	return rows.Err()
}

func (s *SQLite) loadReservations(snap *library.Snapshot) error {
	rows, err := s.db.Query(`SELECT id,person_id,book_isbn,reservation_date,expiry_date,active FROM reservations ORDER BY seq`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var rec library.ReservationRecord
		if err := rows.Scan(&rec.ID, &rec.PersonID, &rec.BookISBN, &rec.ReservationDate, &rec.ExpiryDate, &rec.Active); err != nil {
			return err
		}
		snap.Reservations = append(snap.Reservations, rec)
	}
	return rows.Err()
}

func (s *SQLite) loadReviews(snap *library.Snapshot) error {
	rows, err := s.db.Query(`SELECT id,person_id,book_isbn,rating,comment,review_date FROM reviews ORDER BY seq`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var rec library.ReviewRecord
		if err := rows.Scan(&rec.ID, &rec.PersonID, &rec.BookISBN, &rec.Rating, &rec.Comment, &rec.ReviewDate); err != nil {
			return err
		}
		snap.Reviews = append(snap.Reviews, rec)
	}
	return rows.Err()
}
