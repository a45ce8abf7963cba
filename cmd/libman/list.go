package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"library-system/library"
)

var (
	searchTitle  string
	searchAuthor string
	searchGenre  string
)

func init() {
	searchCmd.Flags().StringVar(&searchTitle, "title", "", "Title substring")
	searchCmd.Flags().StringVar(&searchAuthor, "author", "", "Author name substring")
	searchCmd.Flags().StringVar(&searchGenre, "genre", "", "Genre substring")

	rootCmd.AddCommand(listBooksCmd, searchCmd, statsCmd, ratingCmd)
}

func printBook(c *library.Catalog, b *library.Book) {
	var names []string
	for _, aid := range b.AuthorIDs() {
		if a, ok := c.Author(aid); ok {
			names = append(names, a.Name())
		} else {
			names = append(names, aid)
		}
	}
	fmt.Printf("%-16s %-35s %-25s %-15s %d\n", b.ISBN(), b.Title(), strings.Join(names, ", "), b.Genre(), b.Year())
}

var listBooksCmd = &cobra.Command{
	Use:   "list-books",
	Short: "List every book in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return readCatalog(func(c *library.Catalog) error {
			for _, b := range c.Books() {
				printBook(c, b)
			}
			return nil
		})
	},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search books by title, author and genre substrings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return readCatalog(func(c *library.Catalog) error {
			for _, b := range c.SearchBooks(searchTitle, searchAuthor, searchGenre) {
				printBook(c, b)
			}
			return nil
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return readCatalog(func(c *library.Catalog) error {
			s := c.Statistics()
			fmt.Printf("%s\n", c.Name())
			fmt.Printf("  books:               %d\n", s.Books)
			fmt.Printf("  authors:             %d\n", s.Authors)
			fmt.Printf("  genres:              %d\n", s.Genres)
			fmt.Printf("  publishers:          %d\n", s.Publishers)
			fmt.Printf("  persons:             %d\n", s.Persons)
			fmt.Printf("  loans:               %d (%d active, %d overdue)\n", s.Loans, s.ActiveLoans, s.OverdueLoans)
			fmt.Printf("  reservations:        %d (%d active)\n", s.Reservations, s.ActiveReservations)
			fmt.Printf("  fines:               %d (%d unpaid)\n", s.Fines, s.UnpaidFines)
			fmt.Printf("  reviews:             %d\n", s.Reviews)
			return nil
		})
	},
}

var ratingCmd = &cobra.Command{
	Use:   "rating <isbn>",
	Short: "Show a book's average review rating",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return readCatalog(func(c *library.Catalog) error {
			avg, ok := c.AverageBookRating(args[0])
			if !ok {
				fmt.Printf("%s has no reviews yet\n", args[0])
				return nil
			}
			fmt.Printf("%s: %.2f / 5\n", args[0], avg)
			return nil
		})
	},
}
