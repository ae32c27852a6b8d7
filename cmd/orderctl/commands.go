package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	orderingapp "github.com/orderpad/backend/internal/application/ordering"
	"github.com/orderpad/backend/internal/domain/catalog"
	"github.com/orderpad/backend/internal/domain/ordering"
)

func newCatalogCommand(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the effective catalog",
	}

	var dayType string
	show := &cobra.Command{
		Use:   "show",
		Short: "Print every item with its recommended quantities",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := env.setup.Catalog(cmd.Context())
			if err != nil {
				return err
			}
			days := catalog.AllDayTypes()
			if dayType != "" {
				day, ok := catalog.ParseDayType(dayType)
				if !ok {
					return fmt.Errorf("unknown day type %q", dayType)
				}
				days = []catalog.DayType{day}
			}
			return printCatalog(cmd.OutOrStdout(), c, days)
		},
	}
	show.Flags().StringVar(&dayType, "day-type", "", "Only show this day type")

	csvCmd := &cobra.Command{
		Use:   "csv",
		Short: "Write the catalog, overrides included, as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, _, err := env.setup.ExportCSV(cmd.Context())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.AddCommand(show, csvCmd)
	return cmd
}

func printCatalog(w io.Writer, c catalog.Catalog, days []catalog.DayType) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := []string{"NAME", "CATEGORY"}
	for _, day := range days {
		header = append(header, day.String())
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, item := range c {
		row := []string{item.Name, item.Category.DisplayName()}
		for _, day := range days {
			row = append(row, fmt.Sprint(item.RecommendedFor(day)))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// sessionFlags builds a session from a saved file or a fresh day type, then
// applies name=value entries given on the command line
type sessionFlags struct {
	file    string
	dayType string
	have    []string
	orders  []string
	notes   []string
	final   string
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "session", "s", "", "Session JSON file, - for stdin")
	cmd.Flags().StringVar(&f.dayType, "day-type", "", "Start a new session for this day type")
	cmd.Flags().StringArrayVar(&f.have, "have", nil, "Inventory entry as name=quantity (X for do-not-order)")
	cmd.Flags().StringArrayVar(&f.orders, "order", nil, "Order override as name=quantity (X for do-not-order)")
	cmd.Flags().StringArrayVar(&f.notes, "note", nil, "Item note as name=text")
	cmd.Flags().StringVar(&f.final, "final-note", "", "Note printed at the end of the order document")
}

func (f *sessionFlags) build(cmd *cobra.Command, env *environment) (ordering.Session, error) {
	ctx := cmd.Context()

	var session ordering.Session
	var err error
	switch {
	case f.file != "":
		session, err = readSession(cmd.InOrStdin(), f.file)
		if err != nil {
			return ordering.Session{}, err
		}
		if f.dayType != "" {
			session, err = env.sessions.ChangeDayType(ctx, session, f.dayType)
		}
	case f.dayType != "":
		session, err = env.sessions.Start(ctx, f.dayType)
	default:
		return ordering.Session{}, fmt.Errorf("--session or --day-type is required")
	}
	if err != nil {
		return ordering.Session{}, err
	}

	for _, kv := range f.have {
		name, value, err := splitAssignment(kv)
		if err != nil {
			return ordering.Session{}, err
		}
		if session, err = env.sessions.UpdateInventory(ctx, session, name, ordering.ParseEntry(value)); err != nil {
			return ordering.Session{}, err
		}
	}
	for _, kv := range f.orders {
		name, value, err := splitAssignment(kv)
		if err != nil {
			return ordering.Session{}, err
		}
		if session, err = env.sessions.UpdateOrder(ctx, session, name, ordering.ParseEntry(value)); err != nil {
			return ordering.Session{}, err
		}
	}
	for _, kv := range f.notes {
		name, value, err := splitAssignment(kv)
		if err != nil {
			return ordering.Session{}, err
		}
		if session, err = env.sessions.UpdateNote(ctx, session, name, value); err != nil {
			return ordering.Session{}, err
		}
	}
	if f.final != "" {
		session = env.sessions.UpdateFinalNote(ctx, session, f.final)
	}
	return session, nil
}

func splitAssignment(kv string) (string, string, error) {
	name, value, ok := strings.Cut(kv, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return "", "", fmt.Errorf("expected name=value, got %q", kv)
	}
	return strings.TrimSpace(name), strings.TrimSpace(value), nil
}

func readSession(stdin io.Reader, path string) (ordering.Session, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return ordering.Session{}, fmt.Errorf("read session: %w", err)
	}
	var session ordering.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return ordering.Session{}, fmt.Errorf("decode session %s: %w", path, err)
	}
	return session, nil
}

func newApplyCommand(env *environment) *cobra.Command {
	var flags sessionFlags
	var table bool

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Fill order quantities from inventory and print the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := flags.build(cmd, env)
			if err != nil {
				return err
			}
			session, err = env.sessions.Apply(cmd.Context(), session)
			if err != nil {
				return err
			}
			if table {
				view, err := env.sessions.View(cmd.Context(), session)
				if err != nil {
					return err
				}
				return printOrders(cmd.OutOrStdout(), view)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(session)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&table, "table", false, "Print a table instead of the session JSON")
	return cmd
}

func printOrders(w io.Writer, view orderingapp.SessionResponse) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\n", view.DayTypeLabel)
	fmt.Fprintln(tw, "NAME\tCATEGORY\tNEEDED\tHAVE\tORDER\tNOTE")
	for _, row := range view.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			row.Name, row.CategoryName, row.Recommended, row.Inventory, row.Order, row.Note)
	}
	return tw.Flush()
}

func newExportCommand(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the order document or the full inventory workbook",
	}

	var pdfFlags, xlsxFlags sessionFlags
	var pdfOut, xlsxOut string

	pdf := &cobra.Command{
		Use:   "pdf",
		Short: "Render the order document; the session is applied first",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := pdfFlags.build(cmd, env)
			if err != nil {
				return err
			}
			if !session.Applied {
				if session, err = env.sessions.Apply(cmd.Context(), session); err != nil {
					return err
				}
			}
			artifact, err := env.exports.OrderDocument(cmd.Context(), session)
			if err != nil {
				return err
			}
			return writeArtifact(cmd.OutOrStdout(), pdfOut, artifact)
		},
	}
	pdfFlags.register(pdf)
	pdf.Flags().StringVarP(&pdfOut, "out", "o", ".", "Output directory")

	xlsx := &cobra.Command{
		Use:   "xlsx",
		Short: "Write every item with its inventory and order to a workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := xlsxFlags.build(cmd, env)
			if err != nil {
				return err
			}
			artifact, err := env.exports.FullInventory(cmd.Context(), session)
			if err != nil {
				return err
			}
			return writeArtifact(cmd.OutOrStdout(), xlsxOut, artifact)
		},
	}
	xlsxFlags.register(xlsx)
	xlsx.Flags().StringVarP(&xlsxOut, "out", "o", ".", "Output directory")

	cmd.AddCommand(pdf, xlsx)
	return cmd
}

func writeArtifact(w io.Writer, dir string, a *orderingapp.Artifact) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(dir, a.FileName)
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if a.Pages > 0 {
		_, err := fmt.Fprintf(w, "%s (%d pages)\n", path, a.Pages)
		return err
	}
	_, err := fmt.Fprintln(w, path)
	return err
}
