package cli

import (
	"fmt"
	"io"
	"strings"

	"ambient/internal/export"
	"ambient/internal/notes/data"

	"github.com/spf13/cobra"
)

func newExportCommand(a *app) *cobra.Command {
	var toStdout bool
	var htmlPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Rewrite the export file from the note store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			notes := a.svc.List()

			if toStdout {
				return export.NewWriterExporter(out, "stdout").Export(data.Serialize(notes))
			}

			if err := a.svc.Export(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Exported %d note(s) to %s\n", len(notes), a.svc.ExportLocation())

			if htmlPath != "" {
				if err := export.WriteHTML(notes, htmlPath); err != nil {
					return fmt.Errorf("html export: %w", err)
				}
				fmt.Fprintf(out, "Rendered HTML to %s\n", htmlPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Write the export to stdout instead of the export file")
	cmd.Flags().StringVar(&htmlPath, "html", "", "Also render the notes as an HTML page at this path")
	return cmd
}

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Compare the export file with the note store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.svc.Check()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if report.InSync() {
				fmt.Fprintf(out, "In sync: %s matches %d stored note(s)\n", a.svc.ExportLocation(), len(a.svc.List()))
				return nil
			}

			if report.ExportMissing {
				fmt.Fprintf(out, "Export file missing: %s\n", a.svc.ExportLocation())
			}
			printIDs(out, "Missing from export", report.Missing)
			printIDs(out, "Only in export", report.Extra)
			printIDs(out, "Stale in export", report.Stale)
			if report.OrderDiffers {
				fmt.Fprintln(out, "Order differs from the store")
			}
			return fmt.Errorf("export is out of sync, run \"ambient export\" to rewrite it")
		},
	}
}

func printIDs(w io.Writer, label string, ids []string) {
	if len(ids) == 0 {
		return
	}
	fmt.Fprintf(w, "%s: %s\n", label, strings.Join(ids, ", "))
}
