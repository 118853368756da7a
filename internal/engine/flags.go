package engine

import "pathfinder/internal/model"

// Constraint flag codes derived from fixed answer-value rules.
const (
	FlagTransport            = "transport"
	FlagFinancial            = "financial"
	FlagHomeResponsibilities = "home_responsibilities"
	FlagNoDevice             = "no_device"
	FlagSafetyConcern        = "safety_concern"
)

// ConstraintFlags derives the constraint flag set the payload assembler
// embeds in derived_fields. The contradiction checks test different
// answer values (a flag marks hardship, a contradiction marks hardship
// claimed alongside its denial) and do not reuse these rules.
func ConstraintFlags(answers model.AnswerMap) []string {
	flags := []string{}

	switch answers.String("transportAccess") {
	case "difficult", "veryDifficult":
		flags = append(flags, FlagTransport)
	}
	if answers.String("financialSituation") == "difficult" {
		flags = append(flags, FlagFinancial)
	}
	switch answers.String("homeResponsibilities") {
	case "many", "caring":
		flags = append(flags, FlagHomeResponsibilities)
	}
	if answers.String("deviceAccess") == "no" {
		flags = append(flags, FlagNoDevice)
	}
	if answers.String("safety") == "no" {
		flags = append(flags, FlagSafetyConcern)
	}

	return flags
}
