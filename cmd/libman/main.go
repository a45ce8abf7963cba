// Package main provides the libman CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"library-system/config"
	"library-system/library"
	"library-system/store"
)

var (
	cfgPath string
	verbose bool
	cfg     config.Config
	log     zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "libman",
	Short: "Library catalog and circulation manager",
	Long: `libman manages a library catalog: books, authors, people, loans,
fines, reservations and reviews. State lives in a SQLite database and
can be exported to or imported from a JSON snapshot.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath, "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// openStore opens the configured SQLite database.
func openStore() (*store.SQLite, error) {
	return store.NewSQLite(cfg.DBPath, log)
}

// loadCatalog reads the stored snapshot into a catalog.
func loadCatalog(s store.Store) (*library.Catalog, error) {
	snap, err := s.Load()
	if err != nil {
		return nil, err
	}
	if snap.Name == "" || snap.Name == "Library" {
		snap.Name = cfg.LibraryName
	}
	return store.BuildCatalog(snap, cfg.SkipInvalid, log)
}

// withCatalog runs fn against the stored catalog and persists the result
// when fn succeeds.
func withCatalog(fn func(*library.Catalog) error) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	catalog, err := loadCatalog(s)
	if err != nil {
		return err
	}
	if err := fn(catalog); err != nil {
		return err
	}
	return store.SaveCatalog(s, catalog)
}

// readCatalog runs fn against the stored catalog without saving.
func readCatalog(fn func(*library.Catalog) error) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	catalog, err := loadCatalog(s)
	if err != nil {
		return err
	}
	return fn(catalog)
}
