package service

// Сообщения об ошибках, которые видит клиент
const (
	msgAccessDenied         = "Access denied"
	msgQuizNotFound         = "Quiz not found"
	msgResultNotFound       = "Quiz result not found"
	msgSessionNotFound      = "Session not found"
	msgQuestionNotFound     = "Question not found"
	msgMockSessionNotFound  = "Interview session not found"
	msgQuizAlreadySubmitted = "Quiz already submitted"
	msgQuizGenerationFailed = "Failed to generate quiz questions. Please try again."
	msgNoValidQuestions     = "AI did not generate valid questions"
)
