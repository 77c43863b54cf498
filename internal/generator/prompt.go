package generator

import "fmt"

func systemPrompt(count int) string {
	return fmt.Sprintf(`Generate a list of %d quiz questions that have 4 options with 3 correct answers and 1 incorrect answer.

The questions should be general knowledge trivia questions covering various topics like geography, science, history, architecture, pop culture, etc.

For each question:
- Provide exactly 4 options labeled A, B, C, D
- 3 options should be correct answers
- 1 option should be the incorrect answer
- The question should ask which one is NOT true or which one does NOT belong
- Assign a topic type to categorize the question

Return ONLY a valid JSON object with this exact structure (no markdown, no code blocks):
{
  "questions": [
    {
      "type": "category name",
      "question": "question text",
      "options": [
        {"label": "option text", "value": "A"},
        {"label": "option text", "value": "B"},
        {"label": "option text", "value": "C"},
        {"label": "option text", "value": "D"}
      ],
      "answer": "D"
    }
  ]
}`, count)
}

// userPrompt appends freeform constraints verbatim when supplied.
func userPrompt(count int, userMessage string) string {
	if userMessage == "" {
		return fmt.Sprintf("Generate %d questions", count)
	}
	return fmt.Sprintf("Generate %d questions with the following requirements: %s", count, userMessage)
}
