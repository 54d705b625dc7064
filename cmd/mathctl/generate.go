package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/stemsi/mathsession-backend/internal/model"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a word problem and store it as a new session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			session, err := a.Service.Create(cmd.Context())
			if err != nil {
				return err
			}

			hide, _ := cmd.Flags().GetBool("hide-answer")
			out := cmd.OutOrStdout()
			if wantJSON(cmd) {
				resp := model.CreateSessionResponse{
					Success:     true,
					SessionID:   session.ID.String(),
					ProblemText: session.ProblemText,
				}
				if !hide {
					resp.FinalAnswer = &session.CorrectAnswer
				}
				return printJSON(out, resp)
			}

			fmt.Fprintf(out, "Session: %s\n\n%s\n", session.ID, session.ProblemText)
			if !hide {
				fmt.Fprintf(out, "\nAnswer: %s\n", strconv.FormatFloat(session.CorrectAnswer, 'f', -1, 64))
			}
			return nil
		},
	}
	cmd.Flags().Bool("hide-answer", false, "Do not print the correct answer")
	return cmd
}
