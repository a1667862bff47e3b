package generate

import (
	"context"

	"github.com/akolanti/LabAPI/internal/domain/artifactModel"
	"github.com/akolanti/LabAPI/internal/metrics"
	"github.com/akolanti/LabAPI/internal/pipeline/genparse"
	"github.com/akolanti/LabAPI/internal/pipeline/llm"
)

const quizInstruction = `You create multiple-choice quizzes from laboratory course material.

Return a single JSON object with exactly this shape:
{
  "title": "Quiz title",
  "questions": [
    {
      "question": "Question text?",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correctIndex": 1,
      "explanation": "Why that option is correct."
    }
  ]
}

Rules:
- 5 to 10 questions, each with exactly 4 options and one correct answer.
- correctIndex is the zero-based position of the correct option.
- Base every question on the provided material only.
- Respond with the JSON object only, no surrounding prose.`

type wireQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

type quizResponse struct {
	Title     string         `json:"title"`
	Questions []wireQuestion `json:"questions"`
}

// Quiz derives a GeneratedQuiz from chunked note content, degrading to a
// single generic question when the backend fails or returns garbage.
func Quiz(ctx context.Context, provider llm.Provider, in Input) (artifactModel.GeneratedQuiz, error) {
	fallback := func() quizResponse {
		logger.Warn("quiz generation degraded to fallback question")
		metrics.CaptureFallback("quiz")
		return quizResponse{
			Title: "Review Quiz",
			Questions: []wireQuestion{{
				Question: "What should you do before starting any laboratory procedure?",
				Options: []string{
					"Skip the protocol and improvise",
					"Read the full procedure and safety notes",
					"Start with the most dangerous step",
					"Work without documenting anything",
				},
				CorrectIndex: 1,
				Explanation:  "Reading the complete procedure and its safety notes first is the baseline of safe lab work.",
			}},
		}
	}

	resp, err := genparse.CallAndParse(ctx, provider, genparse.AbsorbAll, quizInstruction, buildPrompt(in), fallback)
	if err != nil {
		return artifactModel.GeneratedQuiz{}, err
	}
	if len(resp.Questions) == 0 {
		resp = fallback()
	}

	quiz := artifactModel.GeneratedQuiz{
		Id:    mintArtifactID(),
		Title: resp.Title,
	}
	if quiz.Title == "" {
		quiz.Title = "Review Quiz"
	}

	for i, q := range resp.Questions {
		correct := q.CorrectIndex
		if correct < 0 || correct >= len(q.Options) {
			correct = 0
		}
		quiz.Questions = append(quiz.Questions, artifactModel.QuizQuestion{
			Id:           mintItemID("question", i),
			Question:     q.Question,
			Options:      q.Options,
			CorrectIndex: correct,
			Explanation:  q.Explanation,
			Order:        i + 1,
		})
	}
	return quiz, nil
}
