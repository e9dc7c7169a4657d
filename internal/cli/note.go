package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"ambient/internal/notes/data"

	"github.com/spf13/cobra"
)

func newNoteCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"n"},
		Short:   "Note management commands",
	}
	cmd.AddCommand(newAddCommand(a), newEditCommand(a), newListCommand(a), newShowCommand(a))
	return cmd
}

func newAddCommand(a *app) *cobra.Command {
	var dateInput, content string

	cmd := &cobra.Command{
		Use:     "add <title...>",
		Aliases: []string{"a"},
		Short:   "Add a new note",
		Example: `  ambient note add Drones --date 2024-01-05 --content "slow pads"
  echo "tape loops" | ambient note add Hiss --content -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := data.ParseDateInput(dateInput, time.Now())
			if err != nil {
				return err
			}
			body, err := readContent(cmd.InOrStdin(), content)
			if err != nil {
				return err
			}

			draft := data.Draft{Title: strings.Join(args, " "), Date: date, Content: body}
			notes, err := a.svc.Save(draft, "")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Added: %s\n", notes[0].Title)
			fmt.Fprintf(out, "ID: %s\n", notes[0].ID)
			fmt.Fprintf(out, "Exported: %s\n", a.svc.ExportLocation())
			return nil
		},
	}

	cmd.Flags().StringVar(&dateInput, "date", "today", "Date (yyyy-MM-dd, MM-dd, today, tomorrow, +N, -N)")
	cmd.Flags().StringVarP(&content, "content", "c", "", `Note content ("-" reads stdin)`)
	return cmd
}

func newEditCommand(a *app) *cobra.Command {
	var title, dateInput, content string

	cmd := &cobra.Command{
		Use:     "edit <note-id>",
		Aliases: []string{"e"},
		Short:   "Edit a note; fields not given keep their value",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := a.svc.Find(args[0])
			if err != nil {
				return err
			}
			draft, err := note.Draft()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if !flags.Changed("title") && !flags.Changed("date") && !flags.Changed("content") {
				return fmt.Errorf("nothing to change: pass --title, --date or --content")
			}
			if flags.Changed("title") {
				draft.Title = title
			}
			if flags.Changed("date") {
				if draft.Date, err = data.ParseDateInput(dateInput, time.Now()); err != nil {
					return err
				}
			}
			if flags.Changed("content") {
				if draft.Content, err = readContent(cmd.InOrStdin(), content); err != nil {
					return err
				}
			}

			if _, err := a.svc.Save(draft, note.ID); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Updated: %s\n", draft.Title)
			fmt.Fprintf(out, "ID: %s\n", note.ID)
			fmt.Fprintf(out, "Exported: %s\n", a.svc.ExportLocation())
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVar(&dateInput, "date", "", "New date")
	cmd.Flags().StringVarP(&content, "content", "c", "", `New content ("-" reads stdin)`)
	return cmd
}

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List notes, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			notes := a.svc.List()
			if len(notes) == 0 {
				fmt.Fprintln(out, "No notes found.")
				return nil
			}
			for _, n := range notes {
				printNote(out, n)
			}
			fmt.Fprintf(out, "\n%d note(s)\n", len(notes))
			return nil
		},
	}
}

func newShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <note-id>",
		Short: "Print a note in export format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := a.svc.Find(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), note.String())
			return nil
		},
	}
}

func printNote(w io.Writer, n data.Note) {
	fmt.Fprintf(w, "[%s] %s %s\n", n.ShortID(), n.Date, n.Title)

	first, _, more := strings.Cut(n.Content, "\n")
	if more {
		first += " …"
	}
	if first != "" {
		fmt.Fprintf(w, "           %s\n", first)
	}
}

func readContent(stdin io.Reader, value string) (string, error) {
	if value != "-" {
		return value, nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading content from stdin: %w", err)
	}
	content := strings.ReplaceAll(string(b), "\r\n", "\n")
	return strings.TrimRight(content, "\n"), nil
}
