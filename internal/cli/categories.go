package cli

import (
	"fmt"
	"net/url"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bookocean-backend/internal/domains/catalog/model"
	"bookocean-backend/pkg/container"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List distinct book categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(func(c *container.Container) error {
				categories, err := c.BookService.ListCategories(cmd.Context())
				if err != nil {
					return err
				}
				if len(categories) == 0 {
					warn("Catalog is empty")
					return nil
				}
				for _, name := range categories {
					fmt.Println(name)
				}
				return nil
			})
		},
	}
}

func newBooksCmd() *cobra.Command {
	var filters map[string]string

	cmd := &cobra.Command{
		Use:   "books",
		Short: "List books, optionally filtered by field equality",
		Example: "  bookoceanctl books --where category=Sci-Fi --where quantity=0",
		RunE: func(cmd *cobra.Command, _ []string) error {
			query := url.Values{}
			for k, v := range filters {
				query.Set(k, v)
			}
			filter, err := model.ParseBookFilter(query)
			if err != nil {
				return err
			}

			return withContainer(func(c *container.Container) error {
				books, err := c.BookService.ListBooks(cmd.Context(), filter)
				if err != nil {
					return err
				}
				for _, b := range books {
					qty := fmt.Sprintf("%3d", b.Quantity)
					if b.Quantity <= 0 {
						qty = color.RedString(qty)
					}
					fmt.Printf("%s  %s  %-12s %s\n", b.ID, qty, b.Category, b.Title)
				}
				header("%d books", len(books))
				return nil
			})
		},
	}

	cmd.Flags().StringToStringVar(&filters, "where", nil, "Equality predicate field=value (repeatable)")
	return cmd
}
