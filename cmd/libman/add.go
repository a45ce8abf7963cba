package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"library-system/library"
)

var (
	addAuthorBirthYear int
	addAuthorCountry   string
	addBookAuthors     []string
	addBookGenre       string
	addBookPublisher   string
	addBookYear        int
	addBookPages       int
	addPersonStaffID   string
	addPersonStaffPos  string
)

func init() {
	addAuthorCmd.Flags().IntVar(&addAuthorBirthYear, "birth-year", 0, "Author birth year")
	addAuthorCmd.Flags().StringVar(&addAuthorCountry, "country", "", "Author country")

	addBookCmd.Flags().StringSliceVar(&addBookAuthors, "author", nil, "Author ID (repeatable)")
	addBookCmd.Flags().StringVar(&addBookGenre, "genre", "", "Genre name")
	addBookCmd.Flags().StringVar(&addBookPublisher, "publisher", "", "Publisher ID")
	addBookCmd.Flags().IntVar(&addBookYear, "year", 0, "Publication year")
	addBookCmd.Flags().IntVar(&addBookPages, "pages", 0, "Page count")
	addBookCmd.MarkFlagRequired("author")
	addBookCmd.MarkFlagRequired("genre")
	addBookCmd.MarkFlagRequired("publisher")
	addBookCmd.MarkFlagRequired("year")

	addPersonCmd.Flags().StringVar(&addPersonStaffID, "staff-id", "", "Employee ID (marks the person as staff)")
	addPersonCmd.Flags().StringVar(&addPersonStaffPos, "staff-position", "", "Staff position")

	rootCmd.AddCommand(addAuthorCmd, addGenreCmd, addPublisherCmd, addBookCmd, addPersonCmd)
}

var addAuthorCmd = &cobra.Command{
	Use:   "add-author <id> <name>",
	Short: "Register an author",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(func(c *library.Catalog) error {
			var birthYear *int
			if cmd.Flags().Changed("birth-year") {
				birthYear = &addAuthorBirthYear
			}
			author, err := library.NewAuthor(args[0], args[1], birthYear, addAuthorCountry)
			if err != nil {
				return err
			}
			if err := c.AddAuthor(author); err != nil {
				return err
			}
			fmt.Printf("Added author %s (%s)\n", author.Name(), author.ID())
			return nil
		})
	},
}

var addGenreCmd = &cobra.Command{
	Use:   "add-genre <name> [description]",
	Short: "Register a genre",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(func(c *library.Catalog) error {
			description := ""
			if len(args) == 2 {
				description = args[1]
			}
			genre, err := library.NewGenre(args[0], description)
			if err != nil {
				return err
			}
			if err := c.AddGenre(genre); err != nil {
				return err
			}
			fmt.Printf("Added genre %s\n", genre.Name())
			return nil
		})
	},
}

var addPublisherCmd = &cobra.Command{
	Use:   "add-publisher <id> <name> [location]",
	Short: "Register a publisher",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(func(c *library.Catalog) error {
			location := ""
			if len(args) == 3 {
				location = args[2]
			}
			pub, err := library.NewPublisher(args[0], args[1], location)
			if err != nil {
				return err
			}
			if err := c.AddPublisher(pub); err != nil {
				return err
			}
			fmt.Printf("Added publisher %s (%s)\n", pub.Name(), pub.ID())
			return nil
		})
	},
}

var addBookCmd = &cobra.Command{
	Use:   "add-book <isbn> <title>",
	Short: "Register a book",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(func(c *library.Catalog) error {
			var pages *int
			if cmd.Flags().Changed("pages") {
				pages = &addBookPages
			}
			book, err := library.NewBook(args[0], args[1], addBookAuthors, addBookGenre, addBookPublisher, addBookYear, pages)
			if err != nil {
				return err
			}
			if err := c.AddBook(book); err != nil {
				return err
			}
			fmt.Printf("Added book %q (%s)\n", book.Title(), book.ISBN())
			return nil
		})
	},
}

var addPersonCmd = &cobra.Command{
	Use:   "add-person <id> <name>",
	Short: "Register a library user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(func(c *library.Catalog) error {
			person, err := library.NewPerson(args[0], args[1])
			if err != nil {
				return err
			}
			if addPersonStaffID != "" {
				staff, err := library.NewStaffProfile(addPersonStaffID, addPersonStaffPos)
				if err != nil {
					return err
				}
				person.AttachStaff(staff)
			}
			if err := c.AddPerson(person); err != nil {
				return err
			}
			fmt.Printf("Added person %s (%s)\n", person.Name(), person.ID())
			return nil
		})
	},
}
