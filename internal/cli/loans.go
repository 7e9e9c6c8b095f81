package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookocean-backend/pkg/container"
)

func newLoansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "loans <email>",
		Short: "Show the enriched loan list of a borrower",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := args[0]
			return withContainer(func(c *container.Container) error {
				loans, err := c.LoanService.ListLoansForBorrower(cmd.Context(), email)
				if err != nil {
					return err
				}
				if len(loans) == 0 {
					warn("No loans for %s", email)
					return nil
				}

				header("Loans of %s", email)
				for _, l := range loans {
					fmt.Printf("  %-24s %-30s %s → %s\n",
						l.BorrowedID,
						l.Title,
						l.BorrowedDate.Format("2006-01-02"),
						l.ReturnDate.Format("2006-01-02"),
					)
				}
				return nil
			})
		},
	}
}
