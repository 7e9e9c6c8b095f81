package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"bookocean-backend/internal/domains/catalog/model"
	"bookocean-backend/pkg/container"
)

func newSeedCmd() *cobra.Command {
	var (
		file        string
		stopOnError bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert books from a YAML file",
		Long:  "Reads a YAML list of books (title, author, category, image, quantity, rating) and adds each one to the configured store.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			books, err := loadSeedFile(file)
			if err != nil {
				return err
			}
			if len(books) == 0 {
				warn("%s has no books", file)
				return nil
			}

			return withContainer(func(c *container.Container) error {
				return seedBooks(cmd.Context(), c, books, stopOnError)
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "books.yaml", "YAML file with the books to insert")
	cmd.Flags().BoolVar(&stopOnError, "stop-on-error", false, "Abort at the first rejected book")
	return cmd
}

func seedBooks(ctx context.Context, c *container.Container, books []model.BookRequest, stopOnError bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	added := 0
	for i, req := range books {
		book, err := c.BookService.AddBook(ctx, req)
		if err != nil {
			if stopOnError {
				return fmt.Errorf("book #%d (%q): %w", i+1, req.Title, err)
			}
			warn("skipped #%d %q: %v", i+1, req.Title, err)
			continue
		}
		added++
		ok("%s  %s", book.ID, book.Title)
	}

	header("%d of %d books added", added, len(books))
	return nil
}

func loadSeedFile(path string) ([]model.BookRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	return parseSeed(data)
}

// parseSeed decodes a YAML list of books. Empty input is an empty list.
func parseSeed(data []byte) ([]model.BookRequest, error) {
	var books []model.BookRequest
	if err := yaml.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("parsing seed YAML: %w", err)
	}
	if books == nil {
		return []model.BookRequest{}, nil
	}
	return books, nil
}
