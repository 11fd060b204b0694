package ai

import "fmt"

// QuizPrompt - промпт генерации викторины с вариантами ответов
func QuizPrompt(role, experience, topics string, numberOfQuestions int) string {
	return fmt.Sprintf(`
Generate %d multiple choice quiz questions for a %s position with %s years of experience, focusing on %s.

Requirements:
- Each question should have 4 options (a, b, c, d)
- Mark the correct answer with its index (0-3)
- Include a brief explanation
- Questions should be relevant to the role and experience level
- Mix difficulty levels appropriately
- Return as valid JSON array

Format:
[
  {
    "question": "Question text?",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correctAnswer": 0,
    "explanation": "Explanation why this is correct"
  }
]

Return only valid JSON, no other text.
`, numberOfQuestions, role, experience, topics)
}

// InterviewQuestionsPrompt - промпт генерации вопросов интервью с ответами
func InterviewQuestionsPrompt(role, experience, topicsToFocus string, numberOfQuestions int) string {
	return fmt.Sprintf(`
You are an AI trained to generate interview questions and answers.
Task:
- Generate %d relevant interview questions based on the role "%s", experience "%s", and topics "%s".
- For each question, provide a detailed answer.
- If applicable, include a small code block in the answer.
- Keep the formatting very clean and clear.
- Return the result as a valid JSON array of objects in the following format:
[
  {
    "question": "Generated question here?",
    "answer": "Detailed answer here."
  }
]
Important: Do NOT add any extra text outside the JSON format. Only return valid JSON.
`, numberOfQuestions, role, experience, topicsToFocus)
}

// ConceptExplanationPrompt - промпт объяснения концепции
func ConceptExplanationPrompt(question string) string {
	return fmt.Sprintf(`
Explain the following question in detail and return the response in JSON format with the keys "title" and "explanation".

Question: "%s"

Example format:
{
  "title": "Your question here",
  "explanation": "Detailed explanation here."
}
`, question)
}

// MockInterviewPrompt - промпт генерации вопросов mock-интервью
func MockInterviewPrompt(role, experience, topics string, numberOfQuestions int) string {
	return fmt.Sprintf(`
Generate %d realistic interview questions for a %s position with %s years of experience, focusing on %s.

Requirements:
- Questions should simulate real interview scenarios
- Include behavioral, technical, and situational questions
- Questions should be challenging but appropriate for the experience level
- Return as valid JSON array

Format:
[
  {
    "question": "Interview question text?",
    "type": "technical|behavioral|situational",
    "expectedTopics": ["topic1", "topic2"]
  }
]

Return only valid JSON, no other text.
`, numberOfQuestions, role, experience, topics)
}

// EvaluationPrompt - промпт оценки ответа кандидата
func EvaluationPrompt(question, userAnswer, questionType string) string {
	return fmt.Sprintf(`
Evaluate the following interview answer and provide constructive feedback:

QUESTION: "%s"
QUESTION TYPE: %s
USER'S ANSWER: "%s"

Provide evaluation in this JSON format:
{
  "score": 0-10,
  "feedback": "Detailed feedback on what was good and what needs improvement",
  "strengths": ["strength1", "strength2"],
  "improvements": ["area1", "area2"],
  "suggestedAnswer": "A model answer for reference"
}

Be constructive and helpful. Focus on communication skills, technical accuracy, and relevance.
Return only valid JSON, no other text.
`, question, questionType, userAnswer)
}
