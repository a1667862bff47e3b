package artifactModel

import "context"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// NormalizeDifficulty coerces anything the generator invents to "medium".
func NormalizeDifficulty(raw string) Difficulty {
	switch Difficulty(raw) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(raw)
	default:
		return DifficultyMedium
	}
}

type Flashcard struct {
	Id         string     `json:"id"`
	Front      string     `json:"front"`
	Back       string     `json:"back"`
	Tags       []string   `json:"tags,omitempty"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
}

type FlashcardSet struct {
	Id         string      `json:"id"`
	NoteId     string      `json:"noteId,omitempty"`
	UserId     string      `json:"userId,omitempty"`
	Title      string      `json:"title"`
	Flashcards []Flashcard `json:"flashcards"`
	CreatedAt  string      `json:"createdAt,omitempty"`
	UpdatedAt  string      `json:"updatedAt,omitempty"`
}

type QuizQuestion struct {
	Id           string   `json:"id"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation,omitempty"`
	Order        int      `json:"order"`
}

type GeneratedQuiz struct {
	Id        string         `json:"id"`
	NoteId    string         `json:"noteId,omitempty"`
	UserId    string         `json:"userId,omitempty"`
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions"`
	CreatedAt string         `json:"createdAt,omitempty"`
	UpdatedAt string         `json:"updatedAt,omitempty"`
}

type SimulationStep struct {
	Id                  string   `json:"id"`
	Order               int      `json:"order"`
	Instruction         string   `json:"instruction"`
	Equipment           []string `json:"equipment,omitempty"`
	ExpectedObservation string   `json:"expectedObservation,omitempty"`
	Hint                string   `json:"hint,omitempty"`
}

type SimulationScenario struct {
	Id        string           `json:"id"`
	NoteId    string           `json:"noteId,omitempty"`
	UserId    string           `json:"userId,omitempty"`
	Title     string           `json:"title"`
	Objective string           `json:"objective,omitempty"`
	Steps     []SimulationStep `json:"steps"`
	CreatedAt string           `json:"createdAt,omitempty"`
	UpdatedAt string           `json:"updatedAt,omitempty"`
}

// ArtifactStore upserts by the artifact's own id. CreatedAt is preserved
// from the first write, UpdatedAt refreshed on every write.
type ArtifactStore interface {
	SaveFlashcardSet(ctx context.Context, set FlashcardSet) (FlashcardSet, error)
	GetFlashcardSet(ctx context.Context, id string) (FlashcardSet, bool)
	SaveQuiz(ctx context.Context, quiz GeneratedQuiz) (GeneratedQuiz, error)
	GetQuiz(ctx context.Context, id string) (GeneratedQuiz, bool)
	SaveScenario(ctx context.Context, scenario SimulationScenario) (SimulationScenario, error)
	GetScenario(ctx context.Context, id string) (SimulationScenario, bool)
}
