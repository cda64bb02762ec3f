package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"gitlab.com/dirk.krummacker/contact-book/internal/model"
	"gitlab.com/dirk.krummacker/contact-book/internal/storage"
)

func newListCommand(withStorage storageRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all contacts, newest first",
		Args:  cobra.NoArgs,
		RunE: withStorage(func(cmd *cobra.Command, _ []string, contacts *storage.Facade) error {
			all, err := contacts.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(all) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no contacts yet, add one with 'contacts add'")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPHONE\tCOMPANY\tEMAIL")
			for _, c := range all {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.Id, c.Name, c.Phone, orDash(c.Company), orDash(c.Email))
			}
			return w.Flush()
		}),
	}
}

func newAddCommand(withStorage storageRunner) *cobra.Command {
	var contact model.Contact
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a contact",
		Args:  cobra.NoArgs,
		RunE: withStorage(func(cmd *cobra.Command, _ []string, contacts *storage.Facade) error {
			result, err := contacts.Create(cmd.Context(), contact)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added contact %d\n", result.LastInsertId)
			return nil
		}),
	}
	contactFlags(cmd, &contact)
	return cmd
}

func newEditCommand(withStorage storageRunner) *cobra.Command {
	var contact model.Contact
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace all values of a contact",
		Args:  cobra.ExactArgs(1),
		RunE: withStorage(func(cmd *cobra.Command, args []string, contacts *storage.Facade) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			contact.Id = id
			rows, err := contacts.Update(cmd.Context(), contact)
			if err != nil {
				return err
			}
			if rows == 0 {
				return fmt.Errorf("contact %d not found", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated contact %d\n", id)
			return nil
		}),
	}
	contactFlags(cmd, &contact)
	return cmd
}

func newRemoveCommand(withStorage storageRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a contact",
		Args:  cobra.ExactArgs(1),
		RunE: withStorage(func(cmd *cobra.Command, args []string, contacts *storage.Facade) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			rows, err := contacts.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			if rows == 0 {
				return fmt.Errorf("contact %d not found", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed contact %d\n", id)
			return nil
		}),
	}
}

// orDash returns s, or a dash if s is empty.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
