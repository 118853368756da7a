package engine

import (
	"testing"

	"pathfinder/internal/model"
)

func TestConstraintFlags(t *testing.T) {
	tests := []struct {
		name    string
		answers model.AnswerMap
		want    []string
	}{
		{
			name:    "no answers yields empty set",
			answers: model.AnswerMap{},
			want:    []string{},
		},
		{
			name: "comfortable circumstances yield empty set",
			answers: model.AnswerMap{
				"transportAccess":      "easy",
				"financialSituation":   "okay",
				"homeResponsibilities": "few",
				"deviceAccess":         "own",
				"safety":               "yes",
			},
			want: []string{},
		},
		{
			name:    "very difficult transport",
			answers: model.AnswerMap{"transportAccess": "veryDifficult"},
			want:    []string{FlagTransport},
		},
		{
			name:    "caring duties",
			answers: model.AnswerMap{"homeResponsibilities": "caring"},
			want:    []string{FlagHomeResponsibilities},
		},
		{
			name: "every flag at once",
			answers: model.AnswerMap{
				"transportAccess":      "difficult",
				"financialSituation":   "difficult",
				"homeResponsibilities": "many",
				"deviceAccess":         "no",
				"safety":               "no",
			},
			want: []string{
				FlagTransport,
				FlagFinancial,
				FlagHomeResponsibilities,
				FlagNoDevice,
				FlagSafetyConcern,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConstraintFlags(tt.answers)
			if len(got) != len(tt.want) {
				t.Fatalf("ConstraintFlags() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("ConstraintFlags()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
