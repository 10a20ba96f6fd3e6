package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wsvendas/motostock/internal/adapters/db"
	"github.com/wsvendas/motostock/internal/core/services"
	"github.com/wsvendas/motostock/internal/pkg/spreadsheet"
)

var importCmd = &cobra.Command{
	Use:   "import FILE.xlsx",
	Short: "Append the rows of a spreadsheet to the admin list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		database, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer database.Close()

		repo := db.NewMotorcycleRepository(database, log)
		admin := services.NewAdminSession(repo, services.NewNotificationFeed(0, log), nil, log)
		result, err := services.NewImporter(admin, log).Import(ctx, data)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "created %d motorcycles\n", result.Created)
		for _, s := range result.Skipped {
			fmt.Fprintf(out, "row %d skipped: %s\n", s.Row, s.Error)
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export FILE.xlsx",
	Short: "Write the admin list to a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		database, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer database.Close()

		items, err := db.NewMotorcycleRepository(database, log).ListAll(ctx)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := spreadsheet.Write(&buf, items); err != nil {
			return err
		}
		if err := os.WriteFile(args[0], buf.Bytes(), 0o644); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d motorcycles to %s\n", len(items), args[0])
		return nil
	},
}
