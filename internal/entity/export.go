package entity

import "time"

// HeaderVersion identifica a lista de colunas da planilha. A lista só pode
// crescer no fim; mudar a ordem desalinha as linhas já gravadas.
const HeaderVersion = "2"

const (
	ListSeparator = ", "
	RowTimeLayout = "02/01/2006, 15:04:05"
)

var sheetHeaders = [...]string{
	"Timestamp",
	"Nombre Completo",
	"Nombre Comercial",
	"Teléfono / WhatsApp",
	"Redes Sociales",
	"Metros Cuadrados",
	"Fecha Estimada",
	"Áreas a Trabajar",
	"Otra Área",
	"Equipo Médico a Considerar",
	"Tipo de Escritorio",
	"Otras Especificaciones de Escritorio",
	"Especificaciones",
	"Cantidad de Almacenamiento",
	"Tipo de Gabinetes",
	"Tipo de Gabinetes (Otro)",
	"Altura Aproximada",
	"Elementos a Conservar",
	"Estilo Deseado",
	"Otro Estilo",
	"Colores Principales",
	"Colores a Evitar",
	"Texturas Favoritas",
	"Percepción Deseada",
	"Ejemplos de Inspiración",
	"Logo o Identidad",
	"Preferencia de Iluminación",
	"Rango de Presupuesto",
}

// SheetHeaders devolve uma cópia do cabeçalho da planilha.
func SheetHeaders() []string {
	out := make([]string, len(sheetHeaders))
	copy(out, sheetHeaders[:])
	return out
}

// ToRow achata o brief numa linha na ordem de SheetHeaders. O timestamp é
// formatado no fuso loc (UTC se nil).
func (b *Brief) ToRow(loc *time.Location) []string {
	if loc == nil {
		loc = time.UTC
	}

	row := []string{
		b.Timestamp.In(loc).Format(RowTimeLayout),

		b.Step1.FullName,
		b.Step1.CommercialName,
		b.Step1.Phone,
		b.Step1.SocialMedia,

		b.Step2.SquareMeters,
		Label(FieldEstimatedDate, string(b.Step2.EstimatedDate)),
		b.Step2.AreasToWork.Join(ListSeparator),
		b.Step2.OtherArea,

		b.Step3.MedicalEquipment,

		Label(FieldDeskType, string(b.Step4.DeskType)),
		b.Step4.DeskTypeSpecs,
		b.Step4.Specifications.Join(ListSeparator),
		b.Step4.StorageAmount,
		b.Step4.CabinetType.Join(ListSeparator),
		b.Step4.CabinetTypeOther,
		b.Step4.ApproximateHeight,
		b.Step4.ElementsToKeep,

		b.Step5.DesiredStyle.Join(ListSeparator),
		b.Step5.OtherStyle,
		b.Step5.MainColors,
		b.Step5.ColorsToAvoid,
		b.Step5.FavoriteTextures,
		b.Step5.DesiredPerception,
		b.Step5.InspirationExamples,
		b.Step5.LogoOrIdentity,

		Label(FieldLightingPreference, string(b.Step6.LightingPreference)),

		Label(FieldBudgetRange, string(b.Step7.BudgetRange)),
	}
	return row
}
