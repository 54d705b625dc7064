package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stemsi/mathsession-backend/internal/model"
)

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <session-id>",
		Short: "List the submissions recorded for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			subs, err := a.Service.ListSubmissions(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if wantJSON(cmd) {
				return printJSON(out, model.SubmissionHistoryResponse{
					Success:     true,
					SessionID:   args[0],
					Submissions: subs,
				})
			}

			if len(subs) == 0 {
				fmt.Fprintln(out, "No submissions yet.")
				return nil
			}

			fmt.Fprintf(out, "%-19s  %-10s  %s\n", "Submitted", "Answer", "Correct")
			fmt.Fprintln(out, strings.Repeat("─", 40))
			for _, s := range subs {
				ok := "✓"
				if !s.IsCorrect {
					ok = "✗"
				}
				fmt.Fprintf(out, "%-19s  %-10s  %s\n",
					s.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					strconv.FormatFloat(s.UserAnswer, 'f', -1, 64),
					ok,
				)
			}
			return nil
		},
	}
}
