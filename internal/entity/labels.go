package entity

// Chaves dos campos enumerados na tabela de rótulos.
const (
	FieldEstimatedDate      = "estimatedDate"
	FieldDeskType           = "deskType"
	FieldLightingPreference = "lightingPreference"
	FieldBudgetRange        = "budgetRange"
)

// labels é a única tabela (campo, valor) -> rótulo legível. Exportação para a
// planilha, email, preview e scope draft usam todos esta tabela.
var labels = map[string]map[string]string{
	FieldEstimatedDate: {
		string(EstimatedDateASAP):       "Lo más pronto posible",
		string(EstimatedDateTwoToThree): "De 2 a 3 meses",
		string(EstimatedDateThreeToSix): "De 3 a 6 meses",
	},
	FieldDeskType: {
		string(DeskTypeCorner):   "En escuadra (esquinado)",
		string(DeskTypeL):        "En L",
		string(DeskTypeStraight): "Recto",
		string(DeskTypeSwivel):   "Giratorio",
		string(DeskTypeProposal): "Prefiero que ustedes me propongan",
	},
	FieldLightingPreference: {
		string(LightingWarm):    "Luz cálida",
		string(LightingNeutral): "Luz neutra",
		string(LightingCold):    "Luz fría",
	},
	FieldBudgetRange: {
		string(Budget120To180): "$120,000 – $180,000",
		string(Budget180To250): "$180,000 – $250,000",
		string(Budget250To330): "$250,000 – $330,000",
		string(Budget330Plus):  "+$330,000",
	},
}

// Label devolve o rótulo de um valor enumerado. Valores desconhecidos passam
// sem alteração.
func Label(field, raw string) string {
	if l, ok := labels[field][raw]; ok {
		return l
	}
	return raw
}

// LabelOr é Label com um texto de reserva para valores vazios.
func LabelOr(field, raw, fallback string) string {
	if raw == "" {
		return fallback
	}
	return Label(field, raw)
}
