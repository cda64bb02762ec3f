package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gitlab.com/dirk.krummacker/contact-book/internal/cli"
	"gitlab.com/dirk.krummacker/contact-book/internal/config"
	"gitlab.com/dirk.krummacker/contact-book/internal/logger"
	"gitlab.com/dirk.krummacker/contact-book/internal/storage"
)

// Usage example on the command line:
// > CONTACTS_DATABASE_DIR=$HOME/.contacts go run main.go add --name "王小明" --phone "0912-345-678"
// > go run main.go --mock list
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logger.New(cfg.Log)

	open := func(cmd *cobra.Command, mock bool) (*storage.Facade, error) {
		native := cfg.Platform.Native && !mock
		contacts, err := storage.Open(cfg.Database, storage.StaticPlatform(native), log)
		if err != nil {
			return nil, err
		}
		if err := contacts.Initialize(cmd.Context()); err != nil {
			contacts.Close()
			return nil, err
		}
		return contacts, nil
	}

	if err := cli.NewRootCommand(open).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
