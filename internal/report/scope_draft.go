package report

import (
	"strings"
	"time"

	"github.com/xavierca1/saint-brief/internal/entity"
)

type Language string

const (
	Spanish Language = "es"
	English Language = "en"
)

func ParseLanguage(v string) Language {
	if strings.EqualFold(strings.TrimSpace(v), string(English)) {
		return English
	}
	return Spanish
}

type scopeLabels struct {
	title, client, commercialName, phone, squareMeters, areas, style, colors, budget,
	deliverables, assumptions, exclusions, contact string
}

var scopeTranslations = map[Language]scopeLabels{
	Spanish: {
		title:          "DRAFT DE ALCANCE - BRIEF CREATIVO DE DISEÑO DE INTERIORES",
		client:         "Cliente",
		commercialName: "Nombre Comercial",
		phone:          "Teléfono",
		squareMeters:   "Metros Cuadrados",
		areas:          "Áreas a Trabajar",
		style:          "Estilo Deseado",
		colors:         "Colores Principales",
		budget:         "Rango de Presupuesto",
		deliverables:   "Entregables",
		assumptions:    "Supuestos",
		exclusions:     "Exclusiones",
		contact:        "Contacto",
	},
	English: {
		title:          "SCOPE DRAFT - INTERIOR DESIGN CREATIVE BRIEF",
		client:         "Client",
		commercialName: "Commercial Name",
		phone:          "Phone",
		squareMeters:   "Square Meters",
		areas:          "Areas to Work",
		style:          "Desired Style",
		colors:         "Main Colors",
		budget:         "Budget Range",
		deliverables:   "Deliverables",
		assumptions:    "Assumptions",
		exclusions:     "Exclusions",
		contact:        "Contact",
	},
}

var (
	scopeDeliverables = []string{
		"Diseño conceptual del espacio",
		"Planos y layouts",
		"Especificaciones de mobiliario",
		"Paleta de colores y materiales",
		"Plan de iluminación",
		"Presupuesto detallado",
	}
	scopeAssumptions = []string{
		"Cliente proporcionará medidas exactas del espacio",
		"Acceso al espacio para toma de medidas",
		"Aprobación de presupuesto según rango especificado",
		"Disponibilidad para reuniones de revisión",
	}
	scopeExclusions = []string{
		"Obra y construcción (solo diseño)",
		"Mobiliario y decoración (solo especificaciones)",
		"Permisos y trámites legales",
		"Instalaciones eléctricas y plomería (solo diseño)",
	}
)

// ScopeDraft gera o texto do rascunho de alcance enviado ao cliente.
func ScopeDraft(b *entity.Brief, lang Language, generatedAt time.Time) string {
	t, ok := scopeTranslations[lang]
	if !ok {
		t = scopeTranslations[Spanish]
	}

	var sb strings.Builder
	line := func(parts ...string) {
		sb.WriteString(strings.Join(parts, ""))
		sb.WriteString("\n")
	}
	list := func(title string, items []string) {
		line()
		line(title, ":")
		for _, item := range items {
			line("- ", item)
		}
	}

	line(t.title)
	line("=====================================")
	line()
	line(t.client, ": ", b.Step1.FullName)
	line(t.commercialName, ": ", orDefault(b.Step1.CommercialName))
	line(t.phone, ": ", orDefault(b.Step1.Phone))
	line(t.squareMeters, ": ", orDefault(b.Step2.SquareMeters), " m²")
	line(t.areas, ": ", orDefault(b.Step2.AreasToWork.Join(entity.ListSeparator)))
	line(t.style, ": ", orDefault(b.Step5.DesiredStyle.Join(entity.ListSeparator)))
	line(t.colors, ": ", orDefault(b.Step5.MainColors))
	line(t.budget, ": ", entity.LabelOr(entity.FieldBudgetRange, string(b.Step7.BudgetRange), NotSpecified))

	list(t.deliverables, scopeDeliverables)
	list(t.assumptions, scopeAssumptions)
	list(t.exclusions, scopeExclusions)

	line()
	line(t.contact, ":")
	line("Cliente: ", b.Step1.FullName)
	line("Teléfono: ", orDefault(b.Step1.Phone))
	line("Redes Sociales: ", orDefault(b.Step1.SocialMedia))
	line()
	line("---")
	line("Generado el: ", generatedAt.Format("02/01/2006"))
	sb.WriteString("ID Brief: " + orDefault(b.ID))

	return sb.String()
}
