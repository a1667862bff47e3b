package generate

import (
	"strings"
	"testing"

	"github.com/akolanti/LabAPI/internal/domain/noteModel"
)

func TestDeriveTags(t *testing.T) {
	tags := deriveTags("procedure_steps", "Centrifuge centrifuge rotor rotor rotor balance before every spin spin")

	if tags[0] != "procedure_steps" {
		t.Errorf("base tag must come first, got %v", tags)
	}
	if len(tags) > maxTags {
		t.Errorf("tags exceed bound: %v", tags)
	}
	// rotor appears three times, centrifuge twice.
	if tags[1] != "rotor" {
		t.Errorf("most frequent word should lead, got %v", tags)
	}
	for _, tag := range tags[1:] {
		if len(tag) < 5 {
			t.Errorf("short word leaked into tags: %q", tag)
		}
	}
}

func TestDeriveTags_NeverEmpty(t *testing.T) {
	tags := deriveTags("", "a b c d")
	if len(tags) != 1 || tags[0] != "general" {
		t.Errorf("got %v, want [general]", tags)
	}
}

func TestBuildPrompt_IncludesSections(t *testing.T) {
	in := Input{
		NoteContent: "Full note text.",
		Sections: []noteModel.Section{
			{Type: noteModel.SectionMaterials, Title: "Materials", Content: "NaOH pellets.", Order: 1},
			{Type: noteModel.SectionSafetyNotes, Title: "Safety", Content: "Caustic.", Order: 2},
		},
	}

	prompt := buildPrompt(in)

	if !strings.Contains(prompt, "Full note text.") {
		t.Error("prompt missing note content")
	}
	if !strings.Contains(prompt, "[materials]") || !strings.Contains(prompt, "NaOH pellets.") {
		t.Errorf("prompt missing section block:\n%s", prompt)
	}
}

func TestDominantSectionType(t *testing.T) {
	sections := []noteModel.Section{
		{Type: noteModel.SectionMaterials, Content: "short"},
		{Type: noteModel.SectionProcedureSteps, Content: "a considerably longer section body"},
	}
	if got := dominantSectionType(sections); got != noteModel.SectionProcedureSteps {
		t.Errorf("got %s", got)
	}
	if got := dominantSectionType(nil); got != noteModel.SectionOther {
		t.Errorf("empty input got %s, want %s", got, noteModel.SectionOther)
	}
}

func TestMintItemID(t *testing.T) {
	a := mintItemID("card", 0)
	b := mintItemID("card", 1)
	if a == b {
		t.Errorf("ids must differ: %s vs %s", a, b)
	}
	if !strings.HasPrefix(a, "card_") {
		t.Errorf("id missing prefix: %s", a)
	}
}
