// Package cli implements the contacts command line tool. It is a terminal front end to the same
// storage the HTTP service uses.
package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"gitlab.com/dirk.krummacker/contact-book/internal/model"
	"gitlab.com/dirk.krummacker/contact-book/internal/storage"
)

// Opener returns initialized storage. With mock set the in-memory store has to be used even if a
// native database is available.
type Opener func(cmd *cobra.Command, mock bool) (*storage.Facade, error)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Mock bool
}

// NewRootCommand creates the root command of the contacts CLI.
func NewRootCommand(open Opener) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "contacts",
		Short:         "Manage the personal contact book",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVar(&opts.Mock, "mock", false, "use the in-memory sample store instead of the database")

	var withStorage storageRunner = func(run storageFunc) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			contacts, err := open(cmd, opts.Mock)
			if err != nil {
				return err
			}
			defer contacts.Close()
			return run(cmd, args, contacts)
		}
	}

	cmd.AddCommand(newListCommand(withStorage))
	cmd.AddCommand(newAddCommand(withStorage))
	cmd.AddCommand(newEditCommand(withStorage))
	cmd.AddCommand(newRemoveCommand(withStorage))
	return cmd
}

// storageFunc is the body of a command that works on the contacts.
type storageFunc func(cmd *cobra.Command, args []string, contacts *storage.Facade) error

// storageRunner turns a storageFunc into a cobra RunE that opens and closes the storage.
type storageRunner func(run storageFunc) func(*cobra.Command, []string) error

// contactFlags binds the editable contact fields to flags of cmd.
func contactFlags(cmd *cobra.Command, contact *model.Contact) {
	cmd.Flags().StringVar(&contact.Name, "name", "", "name of the contact (required)")
	cmd.Flags().StringVar(&contact.Phone, "phone", "", "phone number (required)")
	cmd.Flags().StringVar(&contact.Company, "company", "", "company")
	cmd.Flags().StringVar(&contact.Email, "email", "", "email address")
	cmd.Flags().StringVar(&contact.Avatar, "avatar", "", "avatar image reference")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("phone")
}

// parseID parses the id argument of a command.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
