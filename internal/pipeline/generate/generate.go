package generate

import (
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/LabAPI/internal/domain/noteModel"
	"github.com/akolanti/LabAPI/internal/pipeline/chunk"
	"github.com/akolanti/LabAPI/pkg/logger_i"
	"github.com/google/uuid"
)

// Input is the shared contract of all three artifact generators.
type Input struct {
	NoteContent string              `json:"noteContent"`
	Sections    []noteModel.Section `json:"sections"`
}

var logger = logger_i.NewLogger("ArtifactGenerator")

// buildPrompt folds the note content and its typed sections into one user
// prompt, truncated at the same boundary as the chunker.
func buildPrompt(in Input) string {
	var sb strings.Builder
	sb.WriteString("Study material:\n\n")
	sb.WriteString(in.NoteContent)

	if len(in.Sections) > 0 {
		sb.WriteString("\n\nDocument sections:\n")
		for _, s := range in.Sections {
			sb.WriteString(fmt.Sprintf("\n[%s] %s\n%s\n", s.Type, s.Title, s.Content))
		}
	}
	return chunk.Truncate(sb.String())
}

// mintItemID composes a timestamp with the item index - unique within one
// response, which is all the contract asks for.
func mintItemID(prefix string, index int) string {
	return fmt.Sprintf("%s_%d_%d", prefix, time.Now().UnixMilli(), index)
}

func mintArtifactID() string {
	return uuid.New().String()
}

// dominantSectionType picks the type carrying the most content, used to
// seed flashcard tags.
func dominantSectionType(sections []noteModel.Section) noteModel.SectionType {
	best := noteModel.SectionOther
	bestLen := 0
	for _, s := range sections {
		if len(s.Content) > bestLen {
			best = s.Type
			bestLen = len(s.Content)
		}
	}
	return best
}
