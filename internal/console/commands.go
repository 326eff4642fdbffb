// Package console provides the administrative commands that provision the
// database: creation, removal, schema and fixtures.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"kassa/internal/config"
	"kassa/internal/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Options are shared by every command of a root.
type Options struct {
	Config *config.Config
	Logger *zap.Logger
	In     io.Reader
	Out    io.Writer
}

// NewRootCommand builds a fresh command tree. Flag state lives in the tree,
// so every invocation should use its own root.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	var quiet bool
	root := &cobra.Command{
		Use:           "kassactl",
		Short:         "Administrative commands of the kassa back office",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if quiet {
				cmd.Root().SetOut(io.Discard)
			}
		},
	}
	root.SetIn(opts.In)
	root.SetOut(opts.Out)
	root.SetErr(opts.Out)
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "do not output any message")

	root.AddCommand(
		newDatabaseCreateCommand(opts),
		newDatabaseDropCommand(opts),
		newSchemaCreateCommand(opts),
		newFixturesLoadCommand(opts),
	)
	return root
}

func newDatabaseCreateCommand(opts Options) *cobra.Command {
	var ifNotExists bool
	cmd := &cobra.Command{
		Use:   "database:create",
		Short: "Create the configured database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := database.CreateDatabase(opts.Config.Database, ifNotExists); err != nil {
				return err
			}
			opts.Logger.Info("database created", zap.String("driver", opts.Config.Database.Driver))
			fmt.Fprintln(cmd.OutOrStdout(), "Created database.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&ifNotExists, "if-not-exists", false, "do not fail when the database already exists")
	return cmd
}

func newDatabaseDropCommand(opts Options) *cobra.Command {
	var force, ifExists bool
	cmd := &cobra.Command{
		Use:   "database:drop",
		Short: "Drop the configured database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return errors.New("this operation should not be executed in a production environment, run it with --force to execute")
			}
			if err := database.DropDatabase(opts.Config.Database, ifExists); err != nil {
				return err
			}
			opts.Logger.Info("database dropped", zap.String("driver", opts.Config.Database.Driver))
			fmt.Fprintln(cmd.OutOrStdout(), "Dropped database.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "actually drop the database")
	cmd.Flags().BoolVar(&ifExists, "if-exists", false, "do not fail when the database does not exist")
	return cmd
}

func newSchemaCreateCommand(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "schema:create",
		Short: "Create the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.Open(opts.Config.Database)
			if err != nil {
				return err
			}
			defer database.Close(db)
			if err := database.CreateSchema(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database schema created successfully!")
			return nil
		},
	}
}

func newFixturesLoadCommand(opts Options) *cobra.Command {
	var noInteraction bool
	cmd := &cobra.Command{
		Use:   "fixtures:load",
		Short: "Purge the database and load the seed dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !noInteraction {
				fmt.Fprint(cmd.OutOrStdout(), "Careful, database will be purged. Do you want to continue? (y/N) ")
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
					return errors.New("fixture loading aborted")
				}
			}

			db, err := database.Open(opts.Config.Database)
			if err != nil {
				return err
			}
			defer database.Close(db)
			if err := database.LoadFixtures(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Fixtures loaded.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&noInteraction, "no-interaction", "n", false, "do not ask for confirmation")
	return cmd
}
