package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"bookocean-backend/pkg/container"
	"bookocean-backend/pkg/logger"
)

var (
	flagNoColor bool
	flagEnvFile string
)

var rootCmd = &cobra.Command{
	Use:           "bookoceanctl",
	Short:         "Admin tool for the BookOcean catalog and loans",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable color output")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "Environment file to load before reading config")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if flagNoColor {
			color.NoColor = true
		}
		// Missing env file is fine, real env vars still apply
		_ = godotenv.Load(flagEnvFile)
		logger.Init(os.Getenv("APP_ENV"))
		return nil
	}

	rootCmd.AddCommand(
		newSeedCmd(),
		newCategoriesCmd(),
		newBooksCmd(),
		newLoansCmd(),
	)
}

// withContainer builds the same dependency graph the API uses and tears it down after fn.
func withContainer(fn func(c *container.Container) error) error {
	c, err := container.NewContainer()
	if err != nil {
		return err
	}
	defer c.Cleanup()
	return fn(c)
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}
