package report

import (
	"fmt"
	"time"

	"github.com/xavierca1/saint-brief/internal/entity"
)

const NotSpecified = "No especificado"

type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Section struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// View é a leitura do brief usada no preview, no email e no scope draft.
// Campos opcionais vazios não entram nas seções.
type View struct {
	ID           string    `json:"id"`
	Status       string    `json:"status"`
	Date         string    `json:"date"`
	ClientName   string    `json:"clientName"`
	SquareMeters string    `json:"squareMeters"`
	Budget       string    `json:"budget"`
	Sections     []Section `json:"sections"`
}

func BuildView(b *entity.Brief, loc *time.Location) View {
	if loc == nil {
		loc = time.UTC
	}
	s1, s2, s3, s4, s5, s6, s7 := b.Step1, b.Step2, b.Step3, b.Step4, b.Step5, b.Step6, b.Step7

	cabinets := orDefault(s4.CabinetType.Join(entity.ListSeparator))
	if s4.CabinetTypeOther != "" {
		cabinets = fmt.Sprintf("%s (%s)", cabinets, s4.CabinetTypeOther)
	}

	return View{
		ID:           b.ID,
		Status:       string(b.Status),
		Date:         b.Timestamp.In(loc).Format(entity.RowTimeLayout),
		ClientName:   orDefault(s1.FullName),
		SquareMeters: orDefault(s2.SquareMeters),
		Budget:       entity.LabelOr(entity.FieldBudgetRange, string(s7.BudgetRange), NotSpecified),
		Sections: []Section{
			section("DATOS DEL CLIENTE",
				required("Nombre Completo", s1.FullName),
				required("Nombre Comercial", s1.CommercialName),
				required("Teléfono / WhatsApp", s1.Phone),
				required("Redes Sociales", s1.SocialMedia),
			),
			section("INFORMACIÓN GENERAL",
				required("Metros Cuadrados", squareMeters(s2.SquareMeters)),
				required("Fecha Estimada", entity.Label(entity.FieldEstimatedDate, string(s2.EstimatedDate))),
				required("Áreas a Trabajar", s2.AreasToWork.Join(entity.ListSeparator)),
				optional("Otra Área", s2.OtherArea),
			),
			section("EQUIPO MÉDICO A CONSIDERAR",
				required("Equipo Médico", s3.MedicalEquipment),
			),
			section("PREFERENCIAS DE MOBILIARIO",
				required("Tipo de Escritorio", entity.Label(entity.FieldDeskType, string(s4.DeskType))),
				optional("Otras Especificaciones", s4.DeskTypeSpecs),
				optional("Especificaciones", s4.Specifications.Join(entity.ListSeparator)),
				required("Cantidad de Almacenamiento", s4.StorageAmount),
				required("Tipo de Gabinetes", cabinets),
				required("Altura Aproximada", s4.ApproximateHeight),
				optional("Elementos a Conservar", s4.ElementsToKeep),
			),
			section("ESTILO, COLORES Y PERCEPCIÓN",
				required("Estilo Deseado", s5.DesiredStyle.Join(entity.ListSeparator)),
				optional("Otro Estilo", s5.OtherStyle),
				required("Colores Principales", s5.MainColors),
				optional("Colores a Evitar", s5.ColorsToAvoid),
				optional("Texturas Favoritas", s5.FavoriteTextures),
				required("Percepción Deseada", s5.DesiredPerception),
				optional("Ejemplos de Inspiración", s5.InspirationExamples),
				optional("Logo o Identidad", s5.LogoOrIdentity),
			),
			section("ILUMINACIÓN DESEADA",
				required("Preferencia", entity.Label(entity.FieldLightingPreference, string(s6.LightingPreference))),
			),
			section("PRESUPUESTO Y ALCANCE",
				required("Rango de Inversión", entity.Label(entity.FieldBudgetRange, string(s7.BudgetRange))),
			),
		},
	}
}

// Subject é o assunto do email de notificação.
func Subject(b *entity.Brief) string {
	name := b.Step1.FullName
	if name == "" {
		name = "Cliente"
	}
	m2 := b.Step2.SquareMeters
	if m2 == "" {
		m2 = "N/A"
	}
	return fmt.Sprintf("Nuevo Brief Creativo - %s (%s m²)", name, m2)
}

func section(title string, fields ...*Field) Section {
	s := Section{Title: title}
	for _, f := range fields {
		if f != nil {
			s.Fields = append(s.Fields, *f)
		}
	}
	return s
}

func required(label, value string) *Field {
	return &Field{Label: label, Value: orDefault(value)}
}

func optional(label, value string) *Field {
	if value == "" {
		return nil
	}
	return &Field{Label: label, Value: value}
}

func squareMeters(v string) string {
	if v == "" {
		return ""
	}
	return v + " m²"
}

func orDefault(v string) string {
	if v == "" {
		return NotSpecified
	}
	return v
}
