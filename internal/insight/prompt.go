package insight

import (
	"fmt"
	"strings"
)

// Минимальные объемы, которые промпт запрашивает у модели
const (
	MinQuizQuestions = 4
	MinVideoLinks    = 3
)

// BuildPrompt собирает единственный промпт для одного сканирования.
// Схема ответа фиксированная: пять полей, имена должны совпадать с entity.Insight.
func BuildPrompt(objects []string) string {
	var b strings.Builder

	b.WriteString("You are an AI that provides structured details about objects. ")
	b.WriteString("Given a list of objects, return a JSON response with:\n\n")
	b.WriteString("1. \"detailed_explanation\" - A detailed explanation of the detected objects and their significance.\n")
	b.WriteString("2. \"combined_usage\" - If objects can interact, describe how they can be used together in a meaningful way.\n")
	b.WriteString("3. \"step_by_step_activity\" - Activities involving detected objects.\n")
	fmt.Fprintf(&b, "4. \"quiz\" - At least %d multiple-choice questions (MCQs) with:\n", MinQuizQuestions)
	b.WriteString("   - \"question\": The question text.\n")
	b.WriteString("   - \"options\": {\"A\": \"Option A\", \"B\": \"Option B\", \"C\": \"Option C\", \"D\": \"Option D\"}\n")
	b.WriteString("   - \"correct_answer\": The correct option as a string (e.g., \"B\").\n")
	fmt.Fprintf(&b, "5. \"youtube_links\" - Provide at least %d YouTube links.\n\n", MinVideoLinks)

	fmt.Fprintf(&b, "Objects: %s\n\n", strings.Join(objects, ", "))

	b.WriteString("Expected JSON format:\n")
	b.WriteString(`{
    "detailed_explanation": "Extensive explanation...",
    "combined_usage": "How objects can be used together...",
    "step_by_step_activity": [
        {
            "objects": ["Object1", "Object2"],
            "steps": [
                "Step 1: Do this...",
                "Step 2: Then do this...",
                "Step 3: Complete the action..."
            ]
        }
    ],
    "youtube_links": ["https://youtube.com/video1", "https://youtube.com/video2"],
    "quiz": [
        {
            "question": "Example question?",
            "options": {"A": "Option A", "B": "Option B", "C": "Option C", "D": "Option D"},
            "correct_answer": "B"
        }
    ]
}`)

	return b.String()
}
