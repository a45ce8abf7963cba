package main

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"library-system/library"
)

func init() {
	rootCmd.AddCommand(setPasswordCmd, authCmd)
}

// readPassword securely reads a password with masking.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println() // Add newline after password input
	return strings.TrimSpace(string(bytePassword)), nil
}

var setPasswordCmd = &cobra.Command{
	Use:   "set-password <person-id>",
	Short: "Set a person's password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(func(c *library.Catalog) error {
			password, err := readPassword("New password: ")
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			confirm, err := readPassword("Confirm password: ")
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}
			return c.SetPersonPassword(args[0], password)
		})
	},
}

var authCmd = &cobra.Command{
	Use:   "auth <person-id>",
	Short: "Verify a person's password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return readCatalog(func(c *library.Catalog) error {
			password, err := readPassword("Password: ")
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			if err := c.AuthenticatePerson(args[0], password); err != nil {
				return err
			}
			fmt.Println("OK")
			return nil
		})
	},
}
