package generate

import (
	"context"

	"github.com/akolanti/LabAPI/internal/domain/artifactModel"
	"github.com/akolanti/LabAPI/internal/metrics"
	"github.com/akolanti/LabAPI/internal/pipeline/genparse"
	"github.com/akolanti/LabAPI/internal/pipeline/llm"
)

const scenarioInstruction = `You create guided lab-simulation scenarios from laboratory course material.

Return a single JSON object with exactly this shape:
{
  "title": "Scenario title",
  "objective": "What the student will accomplish",
  "steps": [
    {
      "instruction": "What the student does in this step",
      "equipment": ["pipette", "beaker"],
      "expectedObservation": "What the student should see",
      "hint": "A nudge if the student is stuck"
    }
  ]
}

Rules:
- 3 to 8 steps in the order the real procedure runs.
- equipment lists only items the step actually uses.
- Base every step on the provided material only.
- Respond with the JSON object only, no surrounding prose.`

type wireStep struct {
	Instruction         string   `json:"instruction"`
	Equipment           []string `json:"equipment"`
	ExpectedObservation string   `json:"expectedObservation"`
	Hint                string   `json:"hint"`
}

type scenarioResponse struct {
	Title     string     `json:"title"`
	Objective string     `json:"objective"`
	Steps     []wireStep `json:"steps"`
}

// Scenario derives a SimulationScenario from chunked note content, degrading
// to a single orientation step when the backend fails.
func Scenario(ctx context.Context, provider llm.Provider, in Input) (artifactModel.SimulationScenario, error) {
	fallback := func() scenarioResponse {
		logger.Warn("scenario generation degraded to fallback step")
		metrics.CaptureFallback("scenario")
		return scenarioResponse{
			Title:     "Guided Walkthrough",
			Objective: "Walk through the documented procedure at your own pace.",
			Steps: []wireStep{{
				Instruction:         "Read the procedure sections of this note and identify the equipment involved.",
				ExpectedObservation: "You can name each piece of equipment and the order of operations.",
				Hint:                "Start from the materials and equipment sections.",
			}},
		}
	}

	resp, err := genparse.CallAndParse(ctx, provider, genparse.AbsorbAll, scenarioInstruction, buildPrompt(in), fallback)
	if err != nil {
		return artifactModel.SimulationScenario{}, err
	}
	if len(resp.Steps) == 0 {
		resp = fallback()
	}

	scenario := artifactModel.SimulationScenario{
		Id:        mintArtifactID(),
		Title:     resp.Title,
		Objective: resp.Objective,
	}
	if scenario.Title == "" {
		scenario.Title = "Guided Walkthrough"
	}

	for i, s := range resp.Steps {
		scenario.Steps = append(scenario.Steps, artifactModel.SimulationStep{
			Id:                  mintItemID("step", i),
			Order:               i + 1,
			Instruction:         s.Instruction,
			Equipment:           s.Equipment,
			ExpectedObservation: s.ExpectedObservation,
			Hint:                s.Hint,
		})
	}
	return scenario, nil
}
