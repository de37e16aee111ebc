package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const StepCount = 7

// StepData é o conteúdo de um dos sete passos do wizard.
type StepData interface {
	StepNumber() int
	// validate com complete=false só verifica os valores presentes
	// (enumerações e opções); com complete=true exige também os obrigatórios.
	validate(complete bool) []FieldError
}

// Paso 1 - Datos del cliente
type BasicInfo struct {
	FullName       string `json:"fullName"`
	CommercialName string `json:"commercialName"`
	Phone          string `json:"phone"`
	SocialMedia    string `json:"socialMedia"`
}

func (BasicInfo) StepNumber() int { return 1 }

func (s BasicInfo) validate(complete bool) []FieldError {
	c := newChecker(1, complete)
	c.required("fullName", s.FullName, "El nombre completo es requerido")
	c.required("phone", s.Phone, "El teléfono es requerido")
	return c.errs
}

// Paso 2 - Información general
type GeneralInfo struct {
	SquareMeters  string        `json:"squareMeters"`
	EstimatedDate EstimatedDate `json:"estimatedDate"`
	AreasToWork   Selection     `json:"areasToWork"`
	OtherArea     string        `json:"otherArea"`
}

func (GeneralInfo) StepNumber() int { return 2 }

func (s GeneralInfo) validate(complete bool) []FieldError {
	c := newChecker(2, complete)
	c.required("squareMeters", s.SquareMeters, "Los metros cuadrados son requeridos")
	c.oneOf("estimatedDate", string(s.EstimatedDate), estimatedDateValues, "Debes seleccionar una fecha estimada")
	c.selection("areasToWork", s.AreasToWork, AreaOptions, true, 1, "Debes seleccionar al menos un área a trabajar")
	return c.errs
}

// Paso 3 - Equipo médico a considerar
type SpecialRequirements struct {
	MedicalEquipment string `json:"medicalEquipment"`
}

func (SpecialRequirements) StepNumber() int { return 3 }

func (s SpecialRequirements) validate(bool) []FieldError { return nil }

// Paso 4 - Preferencias de mobiliario
type FurniturePreferences struct {
	DeskType          DeskType  `json:"deskType"`
	DeskTypeSpecs     string    `json:"deskTypeSpecs"`
	Specifications    Selection `json:"specifications"`
	StorageAmount     string    `json:"storageAmount"`
	CabinetType       Selection `json:"cabinetType"`
	CabinetTypeOther  string    `json:"cabinetTypeOther"`
	ApproximateHeight string    `json:"approximateHeight"`
	ElementsToKeep    string    `json:"elementsToKeep"`
}

func (FurniturePreferences) StepNumber() int { return 4 }

func (s FurniturePreferences) validate(complete bool) []FieldError {
	c := newChecker(4, complete)
	c.oneOf("deskType", string(s.DeskType), deskTypeValues, "Debes seleccionar un tipo de escritorio")
	c.selection("specifications", s.Specifications, SpecificationOptions, false, 0, "")
	c.required("storageAmount", s.StorageAmount, "La cantidad de almacenamiento es requerida")
	c.selection("cabinetType", s.CabinetType, CabinetTypeOptions, true, 1, "Debes seleccionar al menos un tipo de gabinete")
	c.required("approximateHeight", s.ApproximateHeight, "Tu altura aproximada es requerida")
	return c.errs
}

// Paso 5 - Estilo, colores y percepción
type StyleColors struct {
	DesiredStyle        Selection `json:"desiredStyle"`
	OtherStyle          string    `json:"otherStyle"`
	MainColors          string    `json:"mainColors"`
	ColorsToAvoid       string    `json:"colorsToAvoid"`
	FavoriteTextures    string    `json:"favoriteTextures"`
	DesiredPerception   string    `json:"desiredPerception"`
	InspirationExamples string    `json:"inspirationExamples"`
	LogoOrIdentity      string    `json:"logoOrIdentity"`
}

func (StyleColors) StepNumber() int { return 5 }

func (s StyleColors) validate(complete bool) []FieldError {
	c := newChecker(5, complete)
	c.selection("desiredStyle", s.DesiredStyle, StyleOptions, true, 1, "Debes seleccionar al menos un estilo")
	c.required("mainColors", s.MainColors, "Los colores principales son requeridos")
	c.required("desiredPerception", s.DesiredPerception, "La percepción deseada es requerida")
	return c.errs
}

// Paso 6 - Iluminación deseada
type Lighting struct {
	LightingPreference LightingPreference `json:"lightingPreference"`
}

func (Lighting) StepNumber() int { return 6 }

func (s Lighting) validate(complete bool) []FieldError {
	c := newChecker(6, complete)
	c.oneOf("lightingPreference", string(s.LightingPreference), lightingValues, "Debes seleccionar una preferencia de iluminación")
	return c.errs
}

// Paso 7 - Presupuesto y alcance
type Budget struct {
	BudgetRange BudgetRange `json:"budgetRange"`
}

func (Budget) StepNumber() int { return 7 }

func (s Budget) validate(complete bool) []FieldError {
	c := newChecker(7, complete)
	c.oneOf("budgetRange", string(s.BudgetRange), budgetValues, "Debes seleccionar un rango de presupuesto")
	return c.errs
}

// ValidateStep expõe a validação completa de um passo (usada pelo formulário
// para marcar campos antes de avançar).
func ValidateStep(data StepData) error {
	if data == nil {
		return ErrUnknownStep
	}
	if errs := data.validate(true); len(errs) > 0 {
		return &ValidationError{Step: data.StepNumber(), Fields: errs}
	}
	return nil
}

// DecodeStep decodifica o JSON de um passo. Campos desconhecidos são
// rejeitados; campos ausentes ficam vazios.
func DecodeStep(n int, raw []byte) (StepData, error) {
	var target StepData
	switch n {
	case 1:
		target = &BasicInfo{}
	case 2:
		target = &GeneralInfo{}
	case 3:
		target = &SpecialRequirements{}
	case 4:
		target = &FurniturePreferences{}
	case 5:
		target = &StyleColors{}
	case 6:
		target = &Lighting{}
	case 7:
		target = &Budget{}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStep, n)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return nil, &ValidationError{Step: n, Fields: []FieldError{{
			Field:   fmt.Sprintf("step%d", n),
			Message: "JSON inválido: " + err.Error(),
		}}}
	}

	switch v := target.(type) {
	case *BasicInfo:
		return *v, nil
	case *GeneralInfo:
		return *v, nil
	case *SpecialRequirements:
		return *v, nil
	case *FurniturePreferences:
		return *v, nil
	case *StyleColors:
		return *v, nil
	case *Lighting:
		return *v, nil
	default:
		return *target.(*Budget), nil
	}
}

type checker struct {
	step     int
	complete bool
	errs     []FieldError
}

func newChecker(step int, complete bool) *checker {
	return &checker{step: step, complete: complete}
}

func (c *checker) add(field, msg string) {
	c.errs = append(c.errs, FieldError{
		Field:   fmt.Sprintf("step%d.%s", c.step, field),
		Message: msg,
	})
}

func (c *checker) required(field, value, msg string) {
	if c.complete && strings.TrimSpace(value) == "" {
		c.add(field, msg)
	}
}

func (c *checker) oneOf(field, value string, allowed []string, msg string) {
	if value == "" {
		if c.complete {
			c.add(field, msg)
		}
		return
	}
	if !contains(allowed, value) {
		c.add(field, fmt.Sprintf("valor no permitido: %q", value))
	}
}

func (c *checker) selection(field string, sel Selection, allowed []string, allowOther bool, min int, msg string) {
	for _, v := range sel.Values() {
		if allowOther && v == OtherOption {
			continue
		}
		if !contains(allowed, v) {
			c.add(field, fmt.Sprintf("opción no permitida: %q", v))
			return
		}
	}
	if c.complete && sel.Len() < min {
		c.add(field, msg)
	}
}
