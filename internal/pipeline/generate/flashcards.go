package generate

import (
	"context"
	"sort"
	"strings"

	"github.com/akolanti/LabAPI/internal/domain/artifactModel"
	"github.com/akolanti/LabAPI/internal/metrics"
	"github.com/akolanti/LabAPI/internal/pipeline/genparse"
	"github.com/akolanti/LabAPI/internal/pipeline/llm"
)

const flashcardInstruction = `You create study flashcards from laboratory course material.

Return a single JSON object with exactly this shape:
{
  "title": "Set title",
  "flashcards": [
    {"front": "Question or term", "back": "Answer or definition", "difficulty": "easy"}
  ]
}

Rules:
- 8 to 15 cards covering the material evenly.
- difficulty is one of: easy, medium, hard.
- Base every card on the provided material only.
- Respond with the JSON object only, no surrounding prose.`

type wireFlashcard struct {
	Front      string   `json:"front"`
	Back       string   `json:"back"`
	Difficulty string   `json:"difficulty"`
	Tags       []string `json:"tags"`
}

type flashcardResponse struct {
	Title      string          `json:"title"`
	Flashcards []wireFlashcard `json:"flashcards"`
}

// Flashcards derives a FlashcardSet from chunked note content. Malformed or
// failed generation degrades to a single generic card, never an error.
func Flashcards(ctx context.Context, provider llm.Provider, in Input) (artifactModel.FlashcardSet, error) {
	fallback := func() flashcardResponse {
		logger.Warn("flashcard generation degraded to fallback card")
		metrics.CaptureFallback("flashcards")
		return flashcardResponse{
			Title: "Study Cards",
			Flashcards: []wireFlashcard{{
				Front:      "Review the source material",
				Back:       "Automatic card generation was unavailable for this note. Review the document sections directly.",
				Difficulty: string(artifactModel.DifficultyEasy),
				Tags:       []string{"general"},
			}},
		}
	}

	resp, err := genparse.CallAndParse(ctx, provider, genparse.AbsorbAll, flashcardInstruction, buildPrompt(in), fallback)
	if err != nil {
		return artifactModel.FlashcardSet{}, err
	}
	// A parsed-but-empty card list is no more usable than garbage.
	if len(resp.Flashcards) == 0 {
		resp = fallback()
	}

	baseTag := string(dominantSectionType(in.Sections))
	set := artifactModel.FlashcardSet{
		Id:    mintArtifactID(),
		Title: resp.Title,
	}
	if set.Title == "" {
		set.Title = "Study Cards"
	}

	for i, card := range resp.Flashcards {
		tags := card.Tags
		if len(tags) == 0 {
			tags = deriveTags(baseTag, card.Front+" "+card.Back)
		}
		if len(tags) > maxTags {
			tags = tags[:maxTags]
		}
		set.Flashcards = append(set.Flashcards, artifactModel.Flashcard{
			Id:         mintItemID("card", i),
			Front:      card.Front,
			Back:       card.Back,
			Tags:       tags,
			Difficulty: artifactModel.NormalizeDifficulty(card.Difficulty),
		})
	}
	return set, nil
}

// maxTags bounds the tag list per card, base tag included.
const maxTags = 5

var stopwords = map[string]bool{
	"about": true, "after": true, "before": true, "between": true, "could": true,
	"every": true, "should": true, "their": true, "there": true, "these": true,
	"those": true, "using": true, "which": true, "while": true, "would": true,
	"other": true, "where": true, "during": true, "because": true,
}

// deriveTags builds a bounded tag set from the section type plus the most
// frequent long words of the card content. Never returns an empty list.
func deriveTags(baseTag string, content string) []string {
	counts := map[string]int{}
	for _, w := range strings.Fields(strings.ToLower(content)) {
		w = strings.Trim(w, ".,;:!?()[]\"'")
		if len(w) < 5 || stopwords[w] {
			continue
		}
		counts[w]++
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})

	tags := []string{}
	if baseTag != "" {
		tags = append(tags, baseTag)
	}
	for _, w := range words {
		if len(tags) >= maxTags {
			break
		}
		if w == baseTag {
			continue
		}
		tags = append(tags, w)
	}
	if len(tags) == 0 {
		tags = append(tags, "general")
	}
	return tags
}
