package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/nhle/tasks/internal/engine"
	"github.com/nhle/tasks/internal/model"
	"github.com/nhle/tasks/internal/theme"
	"github.com/nhle/tasks/internal/ui/tasklist"
)

const dateLayout = "2006-01-02"

func listCmd(opts *rootOptions) *cobra.Command {
	var (
		horizon string
		asJSON  bool
		all     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks due within a horizon",
		Long: `List the tasks due up to the end of the horizon's last day.

Completed tasks follow the show/hide preference toggled by "tasks filter"
unless --all is given.

Examples:
  tasks list
  tasks list --horizon week
  tasks list --horizon 3 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var engineOpts []engine.Option
			if horizon != "" {
				h, err := model.ParseHorizon(horizon)
				if err != nil {
					return err
				}
				engineOpts = append(engineOpts, engine.WithDaysAhead(h.DaysAhead()))
			}

			rt, err := openHeadless(*opts, engineOpts...)
			if err != nil {
				return err
			}
			defer rt.Close()

			if n := rt.engine.Initialize(cmd.Context()); n != nil {
				return n
			}

			tasks := rt.engine.Snapshot().VisibleTasks
			if all {
				tasks = rt.engine.Collection()
			}
			return printTasks(cmd.OutOrStdout(), tasks, time.Now(), asJSON)
		},
	}

	cmd.Flags().StringVarP(&horizon, "horizon", "H", "", "today, tomorrow, week, month or a number of days (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include completed tasks regardless of the preference")

	return cmd
}

func addCmd(opts *rootOptions) *cobra.Command {
	var (
		date   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Add a task",
		Long: `Add a task due on the given date (default today).

Examples:
  tasks add "Buy milk"
  tasks add Call the bank --date 2026-10-20`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			estimatedAt, err := parseDate(date, now)
			if err != nil {
				return err
			}

			rt, err := openHeadless(*opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			rt.engine.LoadPreference(cmd.Context())
			vm, notice := rt.engine.Dispatch(cmd.Context(), engine.AddTaskIntent{
				Description: strings.Join(args, " "),
				EstimatedAt: estimatedAt,
			})
			if notice != nil {
				return notice
			}
			return printTasks(cmd.OutOrStdout(), vm.VisibleTasks, now, asJSON)
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "due date as YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	return cmd
}

func toggleCmd(opts *rootOptions) *cobra.Command {
	return mutationCmd(opts, "toggle <id>", "Mark a task done, or pending again", func(id string) engine.Intent {
		return engine.ToggleTaskIntent{ID: id}
	})
}

func deleteCmd(opts *rootOptions) *cobra.Command {
	return mutationCmd(opts, "delete <id>", "Delete a task", func(id string) engine.Intent {
		return engine.DeleteTaskIntent{ID: id}
	})
}

// mutationCmd builds a command that applies an intent to the task with the
// given id and prints the reloaded list.
func mutationCmd(opts *rootOptions, use, short string, intent func(id string) engine.Intent) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openHeadless(*opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			rt.engine.LoadPreference(cmd.Context())
			vm, notice := rt.engine.Dispatch(cmd.Context(), intent(args[0]))
			if notice != nil {
				return notice
			}
			return printTasks(cmd.OutOrStdout(), vm.VisibleTasks, time.Now(), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func filterCmd(opts *rootOptions) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Toggle whether completed tasks are shown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openHeadless(*opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			if reset {
				if err := rt.prefs.Reset(cmd.Context()); err != nil {
					return err
				}
			}

			rt.engine.LoadPreference(cmd.Context())
			vm := rt.engine.Snapshot()
			if !reset {
				vm, _ = rt.engine.Dispatch(cmd.Context(), engine.ToggleFilterIntent{})
			}

			state := "hidden"
			if vm.ShowDoneTasks {
				state = "shown"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed tasks are now %s.\n", state)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "forget the stored choice and show completed tasks")
	return cmd
}

// parseDate reads a YYYY-MM-DD date as local midnight. Empty means today.
func parseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.ParseInLocation(dateLayout, s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", s)
	}
	return t, nil
}

// taskJSON is the machine-readable form of a task.
type taskJSON struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	EstimatedAt string     `json:"estimatedAt"`
	Done        bool       `json:"done"`
	DoneAt      *time.Time `json:"doneAt,omitempty"`
	Overdue     bool       `json:"overdue"`
}

func printTasks(w io.Writer, tasks []model.Task, now time.Time, asJSON bool) error {
	if asJSON {
		return outputJSON(w, tasks, now)
	}
	return outputHuman(w, tasks, now)
}

func outputJSON(w io.Writer, tasks []model.Task, now time.Time) error {
	out := struct {
		Count int        `json:"count"`
		Tasks []taskJSON `json:"tasks"`
	}{
		Count: len(tasks),
		Tasks: make([]taskJSON, len(tasks)),
	}
	for i, t := range tasks {
		out.Tasks[i] = taskJSON{
			ID:          t.ID,
			Description: t.Description,
			EstimatedAt: t.EstimatedAt.Format(dateLayout),
			Done:        t.IsDone(),
			DoneAt:      t.DoneAt,
			Overdue:     t.IsOverdue(now),
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func outputHuman(w io.Writer, tasks []model.Task, now time.Time) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "Nothing due.")
		return err
	}

	rows := make([][]string, len(tasks))
	for i, t := range tasks {
		mark := "[ ]"
		if t.IsDone() {
			mark = "[x]"
		}
		due := tasklist.DateLabel(t.EstimatedAt, now)
		if t.IsOverdue(now) {
			due += " (overdue)"
		}
		rows[i] = []string{mark, t.ID, t.Description, due}
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.ColorBorder)).
		Headers("", "ID", "TASK", "DUE").
		Rows(rows...)

	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}
