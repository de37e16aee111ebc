package entity

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

type BriefStatus string

const (
	StatusDraft     BriefStatus = "draft"
	StatusCompleted BriefStatus = "completed"
)

// Brief é o documento do wizard: sete passos validados de forma independente
// mais metadados. O ID nunca muda e o status só avança de draft para
// completed, através de Complete.
type Brief struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Status    BriefStatus `json:"status"`

	Step1 BasicInfo            `json:"step1"`
	Step2 GeneralInfo          `json:"step2"`
	Step3 SpecialRequirements  `json:"step3"`
	Step4 FurniturePreferences `json:"step4"`
	Step5 StyleColors          `json:"step5"`
	Step6 Lighting             `json:"step6"`
	Step7 Budget               `json:"step7"`

	// Passos já aceitos por ApplyStep, em ordem crescente.
	AppliedSteps []int `json:"appliedSteps"`
}

var now = func() time.Time { return time.Now().UTC() }

// NewEmptyBrief cria um brief em branco: ID novo, status draft e todos os
// campos vazios. Os enums começam sem valor.
func NewEmptyBrief() *Brief {
	return &Brief{
		ID:           uuid.New().String(),
		Timestamp:    now(),
		Status:       StatusDraft,
		Step2:        GeneralInfo{AreasToWork: NewSelection()},
		Step4:        FurniturePreferences{Specifications: NewSelection(), CabinetType: NewSelection()},
		Step5:        StyleColors{DesiredStyle: NewSelection()},
		AppliedSteps: []int{},
	}
}

func (b *Brief) IsCompleted() bool {
	return b.Status == StatusCompleted
}

// ApplyStep substitui o passo n pelos dados validados e atualiza o timestamp.
// Em caso de erro o brief não é alterado.
func (b *Brief) ApplyStep(n int, data StepData) error {
	if b.IsCompleted() {
		return ErrBriefCompleted
	}
	if data == nil || data.StepNumber() != n {
		return fmt.Errorf("%w: %d", ErrUnknownStep, n)
	}
	if err := ValidateStep(data); err != nil {
		return err
	}

	switch d := data.(type) {
	case BasicInfo:
		b.Step1 = d
	case GeneralInfo:
		b.Step2 = d
	case SpecialRequirements:
		b.Step3 = d
	case FurniturePreferences:
		b.Step4 = d
	case StyleColors:
		b.Step5 = d
	case Lighting:
		b.Step6 = d
	case Budget:
		b.Step7 = d
	default:
		return fmt.Errorf("%w: %d", ErrUnknownStep, n)
	}

	b.markApplied(n)
	b.Timestamp = now()
	return nil
}

// Step devolve o conteúdo atual do passo n.
func (b *Brief) Step(n int) (StepData, error) {
	switch n {
	case 1:
		return b.Step1, nil
	case 2:
		return b.Step2, nil
	case 3:
		return b.Step3, nil
	case 4:
		return b.Step4, nil
	case 5:
		return b.Step5, nil
	case 6:
		return b.Step6, nil
	case 7:
		return b.Step7, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownStep, n)
}

func (b *Brief) steps() []StepData {
	return []StepData{b.Step1, b.Step2, b.Step3, b.Step4, b.Step5, b.Step6, b.Step7}
}

// MissingFields lista o que impede a conclusão, no formato "stepN.campo".
func (b *Brief) MissingFields() []FieldError {
	var missing []FieldError
	for _, s := range b.steps() {
		missing = append(missing, s.validate(true)...)
	}
	return missing
}

// Complete marca o brief como completed se os sete passos cumprem as regras
// de obrigatoriedade. É o único caminho para o status completed.
func (b *Brief) Complete() error {
	if b.IsCompleted() {
		return ErrBriefCompleted
	}
	if missing := b.MissingFields(); len(missing) > 0 {
		return &IncompleteBriefError{Missing: missing}
	}
	b.Status = StatusCompleted
	b.Timestamp = now()
	return nil
}

func (b *Brief) Clone() *Brief {
	c := *b
	c.AppliedSteps = append([]int{}, b.AppliedSteps...)
	return &c
}

func (b *Brief) IsApplied(n int) bool {
	for _, s := range b.AppliedSteps {
		if s == n {
			return true
		}
	}
	return false
}

func (b *Brief) markApplied(n int) {
	if b.IsApplied(n) {
		return
	}
	b.AppliedSteps = append(b.AppliedSteps, n)
	sort.Ints(b.AppliedSteps)
}
