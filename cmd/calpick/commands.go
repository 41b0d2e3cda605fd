package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"cloudeng.io/logging/ctxlog"
	"github.com/spf13/cobra"

	"github.com/jask/calpick/internal/database/repository"
	"github.com/jask/calpick/internal/service"
	"github.com/jask/calpick/internal/testdata"
)

func newBlackoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blackout",
		Short: "Manage days that can never be selected",
	}

	add := &cobra.Command{
		Use:   "add DATE",
		Short: "Block a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()
			day, err := parseDay(args[0], e.loc)
			if err != nil {
				return err
			}
			label, _ := cmd.Flags().GetString("label")
			repo := repository.NewMarkedDateRepo(e.db)
			if err := repo.Upsert(e.ctx, repository.MarkedDate{
				Day:   repository.DayString(day),
				Kind:  repository.KindBlackout,
				Label: label,
			}); err != nil {
				return fmt.Errorf("add blackout: %w", err)
			}
			ctxlog.Logger(e.ctx).Info("blackout added", "day", repository.DayString(day))
			fmt.Fprintf(cmd.OutOrStdout(), "blocked %s\n", repository.DayString(day))
			return nil
		},
	}
	add.Flags().String("label", "", "note shown next to the day")

	remove := &cobra.Command{
		Use:   "remove DATE",
		Short: "Free a blocked day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()
			day, err := parseDay(args[0], e.loc)
			if err != nil {
				return err
			}
			key := repository.DayString(day)
			removed, err := repository.NewMarkedDateRepo(e.db).Delete(e.ctx, repository.KindBlackout, key)
			if err != nil {
				return fmt.Errorf("remove blackout: %w", err)
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s was not blocked\n", key)
				return nil
			}
			ctxlog.Logger(e.ctx).Info("blackout removed", "day", key)
			fmt.Fprintf(cmd.OutOrStdout(), "freed %s\n", key)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()
			kind := repository.KindBlackout
			if all, _ := cmd.Flags().GetBool("all"); all {
				kind = ""
			}
			rows, err := repository.NewMarkedDateRepo(e.db).List(e.ctx, kind)
			if err != nil {
				return fmt.Errorf("list: %w", err)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DAY\tKIND\tSOURCE\tLABEL")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Day, r.Kind, r.Source, r.Label)
			}
			return w.Flush()
		},
	}
	list.Flags().Bool("all", false, "include highlighted days")

	cmd.AddCommand(add, remove, list)
	return cmd
}

func newImportICSCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ics FILE",
		Short: "Mark the days covered by the events of an iCalendar file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetString("kind")
			kind, err := repository.ParseKind(raw)
			if err != nil {
				return err
			}
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			importer := &service.ICSImporter{DB: e.db}
			res, err := importer.ImportFile(e.ctx, args[0], kind, e.loc)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "imported %d %s days, %d already stored\n", res.Imported, kind, res.Skipped)
			for _, ierr := range res.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped: %v\n", ierr)
			}
			return nil
		},
	}
	cmd.Flags().String("kind", string(repository.KindBlackout), "store events as blackout or highlight days")
	return cmd
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "seed",
		Short:  "Store sample blackout and highlight days for the coming year",
		Args:   cobra.NoArgs,
		Hidden: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()
			n, err := testdata.Seed(e.ctx, repository.NewMarkedDateRepo(e.db), time.Now().In(e.loc), nil)
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored %d sample days\n", n)
			return nil
		},
	}
}

func parseDay(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}
