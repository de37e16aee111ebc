// Package testutil reúne fixtures compartilhadas pelos testes.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xavierca1/saint-brief/internal/entity"
)

func CompleteSteps() []entity.StepData {
	return []entity.StepData{
		entity.BasicInfo{
			FullName:       "Dra. Ana López",
			CommercialName: "Clínica Dental Sonrisa",
			Phone:          "+52 55 1234 5678",
			SocialMedia:    "@sonrisadental",
		},
		entity.GeneralInfo{
			SquareMeters:  "80",
			EstimatedDate: entity.EstimatedDateASAP,
			AreasToWork:   entity.NewSelection("Recepción", "Consultorio médico"),
		},
		entity.SpecialRequirements{MedicalEquipment: "Sillón dental"},
		entity.FurniturePreferences{
			DeskType:          entity.DeskTypeL,
			StorageAmount:     "Moderado",
			CabinetType:       entity.NewSelection("Cerrado"),
			ApproximateHeight: "1.65 m",
		},
		entity.StyleColors{
			DesiredStyle:      entity.NewSelection("Minimalista"),
			MainColors:        "Blanco y verde salvia",
			DesiredPerception: "Tranquilo <y> confiable",
		},
		entity.Lighting{LightingPreference: entity.LightingWarm},
		entity.Budget{BudgetRange: entity.Budget250To330},
	}
}

// DraftBrief devolve um brief com os passos 1 a 6 aplicados.
func DraftBrief(t testing.TB) *entity.Brief {
	t.Helper()
	b := entity.NewEmptyBrief()
	for _, s := range CompleteSteps()[:6] {
		require.NoError(t, b.ApplyStep(s.StepNumber(), s))
	}
	return b
}

// CompleteBrief devolve um brief com os sete passos aplicados, ainda em draft.
func CompleteBrief(t testing.TB) *entity.Brief {
	t.Helper()
	b := DraftBrief(t)
	step7 := CompleteSteps()[6]
	require.NoError(t, b.ApplyStep(7, step7))
	return b
}
