// cmd/libctl/main.go
//
// libctl is the operator CLI: it applies the database schema and loads a
// small demo dataset for local development.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"libraledger/internal/catalog"
	"libraledger/internal/config"
	"libraledger/internal/inventory"
	"libraledger/internal/membership"
	"libraledger/internal/observability"
	"libraledger/migrations"
)

func main() {
	root := &cobra.Command{
		Use:           "libctl",
		Short:         "Operational tooling for the library backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(migrateCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func openDB() (*sqlx.DB, error) {
	cfg := config.Load()
	return sqlx.Connect("postgres", cfg.DatabaseURL)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if _, err := db.ExecContext(cmd.Context(), migrations.Schema); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}
			fmt.Println("schema applied")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load a demo catalog, members and inventory counters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			return seed(cmd.Context(), db)
		},
	}
}

func seed(ctx context.Context, db *sqlx.DB) error {
	logger := observability.NewLogger()
	ledger := inventory.NewLedger(inventory.NewPostgresStore(db), logger)
	catalogService := catalog.NewService(catalog.NewPostgresStore(db), ledger, logger)
	membershipService := membership.NewService(membership.NewPostgresStore(db))

	seedBooks := map[string][]catalog.CreateBookInput{
		"Science Fiction": {
			{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593", Quantity: 4},
			{Title: "The Left Hand of Darkness", Author: "Ursula K. Le Guin", ISBN: "9780441478125", Quantity: 2},
		},
		"Classics": {
			{Title: "Pride and Prejudice", Author: "Jane Austen", ISBN: "9780141439518", Quantity: 5},
			{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", ISBN: "9780743273565", Quantity: 3},
		},
		"Poetry": {
			{Title: "Ariel", Author: "Sylvia Plath", ISBN: "9780060931728", Quantity: 1},
		},
	}

	for categoryName, inputs := range seedBooks {
		category, err := catalogService.CreateCategory(ctx, categoryName)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", categoryName, err)
		}
		for _, input := range inputs {
			input.CategoryID = category.ID
			book, err := catalogService.CreateBook(ctx, input)
			if err != nil {
				return fmt.Errorf("seed book %q: %w", input.Title, err)
			}
			if err := ledger.EnsureInitialized(ctx, book.ID, book.Quantity); err != nil {
				return fmt.Errorf("seed inventory for %q: %w", input.Title, err)
			}
		}
	}

	seedMembers := []membership.CreateMemberInput{
		{Name: "Ada Reader", Email: "ada@example.com", Phone: "555-0100"},
		{Name: "Grace Borrower", Email: "grace@example.com", Phone: "555-0101"},
		{Name: "Alan Browser", Email: "alan@example.com"},
	}
	for _, input := range seedMembers {
		if _, err := membershipService.CreateMember(ctx, input); err != nil {
			return fmt.Errorf("seed member %q: %w", input.Name, err)
		}
	}

	fmt.Printf("seeded %d categories and %d members at %s\n",
		len(seedBooks), len(seedMembers), time.Now().Format(time.RFC3339))
	return nil
}
