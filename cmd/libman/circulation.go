package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"library-system/library"
)

var (
	borrowDays  int
	reserveDays int
	reviewWords string
)

func init() {
	borrowCmd.Flags().IntVar(&borrowDays, "days", 14, "Loan period in days")
	reserveCmd.Flags().IntVar(&reserveDays, "days", 7, "Hold period in days")
	reviewCmd.Flags().StringVar(&reviewWords, "comment", "", "Review comment")

	rootCmd.AddCommand(borrowCmd, returnCmd, reserveCmd, cancelReservationCmd,
		payFineCmd, finesCmd, reviewCmd)
}

var borrowCmd = &cobra.Command{
	Use:   "borrow <person-id> <isbn>",
	Short: "Lend a book to a person",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(func(c *library.Catalog) error {
			due := time.Now().Add(time.Duration(borrowDays) * 24 * time.Hour)
			loan, err := c.BorrowBook(args[0], args[1], due)
			if err != nil {
				return err
			}
			fmt.Printf("Loan %s: %s due %s\n", loan.ID(), loan.BookISBN(), loan.DueDate().Format("2006-01-02"))
			return nil
		})
	},
}

var returnCmd = &cobra.Command{
	Use:   "return <loan-id>",
	Short: "Return a borrowed book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(func(c *library.Catalog) error {
			fine, err := c.ReturnBook(args[0])
			if err != nil {
				return err
			}
			if fine != nil {
				fmt.Printf("Returned with fine %s: %.2f (%s)\n", fine.ID(), fine.Amount(), fine.Reason())
			} else {
				fmt.Println("Returned on time")
			}
			return nil
		})
	},
}

var reserveCmd = &cobra.Command{
	Use:   "reserve <person-id> <isbn>",
	Short: "Place a hold on a book",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(func(c *library.Catalog) error {
			expiry := time.Now().Add(time.Duration(reserveDays) * 24 * time.Hour)
			res, err := c.ReserveBook(args[0], args[1], expiry)
			if err != nil {
				return err
			}
			fmt.Printf("Reservation %s expires %s\n", res.ID(), res.ExpiryDate().Format("2006-01-02"))
			return nil
		})
	},
}

var cancelReservationCmd = &cobra.Command{
	Use:   "cancel-reservation <reservation-id>",
	Short: "Cancel a hold",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(func(c *library.Catalog) error {
			return c.CancelReservation(args[0])
		})
	},
}

var payFineCmd = &cobra.Command{
	Use:   "pay-fine <fine-id>",
	Short: "Settle a fine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(func(c *library.Catalog) error {
			return c.PayFine(args[0])
		})
	},
}

var finesCmd = &cobra.Command{
	Use:   "fines <person-id>",
	Short: "List a person's unpaid fines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return readCatalog(func(c *library.Catalog) error {
			for _, f := range c.UserFines(args[0]) {
				fmt.Printf("%-10s %8.2f  %s\n", f.ID(), f.Amount(), f.Reason())
			}
			return nil
		})
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review <review-id> <person-id> <isbn> <rating>",
	Short: "Leave a review for a book",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(func(c *library.Catalog) error {
			var rating int
			if _, err := fmt.Sscanf(args[3], "%d", &rating); err != nil {
				return fmt.Errorf("rating must be a number: %w", err)
			}
			if _, ok := c.Person(args[1]); !ok {
				return fmt.Errorf("person %q not registered", args[1])
			}
			if _, ok := c.Book(args[2]); !ok {
				return fmt.Errorf("book %q not in catalog", args[2])
			}
			review, err := library.NewReview(args[0], args[1], args[2], rating, reviewWords, time.Time{})
			if err != nil {
				return err
			}
			if err := c.AddReview(review); err != nil {
				return err
			}
			fmt.Printf("Review %s recorded (%s)\n", review.ID(), review.Sentiment())
			return nil
		})
	},
}
