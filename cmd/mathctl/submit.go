package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/stemsi/mathsession-backend/internal/model"
)

func newSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <session-id> <answer>",
		Short: "Grade an answer for a session and print the feedback",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			// The answer goes through the same coercion as an HTTP numeric string.
			raw, _ := json.Marshal(args[1])
			result, err := a.Service.Submit(cmd.Context(), model.SubmitAnswerRequest{
				SessionID:  args[0],
				UserAnswer: raw,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if wantJSON(cmd) {
				return printJSON(out, model.SubmitAnswerResponse{
					Success:       true,
					IsCorrect:     result.Submission.IsCorrect,
					Feedback:      result.Submission.FeedbackText,
					CorrectAnswer: result.CorrectAnswer,
					UserAnswer:    result.Submission.UserAnswer,
				})
			}

			verdict := "Incorrect"
			if result.Submission.IsCorrect {
				verdict = "Correct"
			}
			fmt.Fprintf(out, "%s (you answered %s, expected %s)\n\n%s\n",
				verdict,
				strconv.FormatFloat(result.Submission.UserAnswer, 'f', -1, 64),
				strconv.FormatFloat(result.CorrectAnswer, 'f', -1, 64),
				result.Submission.FeedbackText,
			)
			return nil
		},
	}
}
