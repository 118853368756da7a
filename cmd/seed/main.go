// Command seed validates the questionnaire documents and prints one fully
// assembled sample payload. Useful as a smoke check after editing the
// YAML documents.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"pathfinder/internal/calendar"
	"pathfinder/internal/engine"
	"pathfinder/internal/model"
	"pathfinder/internal/submission"
)

func main() {
	configDir := os.Getenv("PATHFINDER_CONFIG_DIR")
	if configDir == "" {
		configDir = "config"
	}

	questionnaire, err := model.LoadQuestionnaire(configDir + "/questionnaire.yaml")
	if err != nil {
		log.Fatal("questionnaire: ", err)
	}
	scoring, err := model.LoadScoringConfig(configDir + "/scoring.yaml")
	if err != nil {
		log.Fatal("scoring: ", err)
	}
	cal, err := calendar.Load(configDir + "/academic_calendar.yaml")
	if err != nil {
		log.Fatal("calendar: ", err)
	}

	fmt.Printf("questionnaire %s: %d questions in %d sections\n",
		questionnaire.Version, questionnaire.TotalQuestions, len(questionnaire.Sections))
	fmt.Printf("scoring: %d dimensions, %d driver templates (cap %d)\n",
		len(scoring.Dimensions), len(scoring.Drivers.Templates), scoring.Drivers.MaxDrivers)

	status := cal.StatusAt(time.Now())
	if status.InTerm {
		fmt.Printf("calendar: in term (%s)\n", status.Year)
	} else {
		fmt.Printf("calendar: holiday (%s)\n", status.Year)
	}

	// Sample answers exercising the visibility and scoring paths
	answers := model.AnswerMap{
		"attendance":           "often",
		"marksRange":           "between50and70",
		"schoolBlockers":       []string{"transport"},
		"financialSituation":   "difficult",
		"transportAccess":      "difficult",
		"homeResponsibilities": "some",
		"deviceAccess":         "shared",
		"safety":               "yes",
		"strengths":            []string{"handsOn", "teamwork"},
		"consent_agree":        true,
	}

	visible := engine.Flatten(questionnaire.Sections, answers)
	fmt.Printf("sample run: %d questions visible\n", len(visible))

	result := engine.GenerateScoringResult(answers, questionnaire, scoring)
	fmt.Printf("recommendation: path %s, drivers %v\n", result.Recommendation, result.Drivers)

	startedAt := time.Now().Add(-4 * time.Minute)
	payload := submission.NewAssembler(questionnaire, scoring).
		GeneratePayload(answers, "en", &startedAt, "en-ZA")

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		log.Fatal("marshal payload: ", err)
	}
	fmt.Println(string(out))
}
