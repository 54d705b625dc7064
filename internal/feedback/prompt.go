package feedback

import (
	"fmt"
	"strconv"
)

const systemPrompt = "You are a helpful math tutor for Primary 5 students."

const promptTemplate = `Generate personalized feedback for a student based on the following information:

Original Problem: %s
Correct Answer: %s
Student's Answer: %s
Is Correct: %s

Generate encouraging and educational feedback that:
1. Acknowledges the student's effort
2. If correct: Celebrates their success and reinforces the concept
3. If incorrect: Gently explains the mistake and provides guidance on how to solve it correctly
4. Is age-appropriate for Primary 5 students
5. Is encouraging and supportive
6. Keeps the feedback concise (2-3 sentences)

Return only the feedback text, no additional formatting or explanations.`

func buildPrompt(in Input) string {
	return fmt.Sprintf(promptTemplate,
		strconv.Quote(in.ProblemText),
		formatNumber(in.CorrectAnswer),
		formatNumber(in.UserAnswer),
		strconv.FormatBool(in.IsCorrect),
	)
}
