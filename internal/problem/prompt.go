package problem

// gradeBand is the audience every generated problem targets.
const gradeBand = "Primary 5"

const systemPrompt = `You write arithmetic word problems for ` + gradeBand + ` students. ` +
	`You always answer with a single JSON object and nothing else.`

const problemPrompt = `Generate a math word problem suitable for elementary to middle school students. The problem should:
1. Be suitable for ` + gradeBand + ` students
2. Be a word problem with a clear scenario
3. Require basic arithmetic (addition, subtraction, multiplication, or division)
4. Have a single numerical answer
5. Be engaging and age-appropriate

Return your response as a JSON object with exactly this format:
{
  "problem_text": "The word problem text here",
  "final_answer": [numeric answer]
}

Example:
{
  "problem_text": "A bakery sold 45 cupcakes in the morning and 23 cupcakes in the afternoon. How many cupcakes did they sell in total?",
  "final_answer": 68
}

Generate a new, unique math word problem now:`
