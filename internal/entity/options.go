package entity

// OtherOption é a opção "Otro" dos grupos de checkboxes que têm um campo de
// texto livre associado.
const OtherOption = "Otro"

type EstimatedDate string

const (
	EstimatedDateASAP       EstimatedDate = "asap"
	EstimatedDateTwoToThree EstimatedDate = "2-3_months"
	EstimatedDateThreeToSix EstimatedDate = "3-6_months"
)

type DeskType string

const (
	DeskTypeCorner   DeskType = "en_escuadra"
	DeskTypeL        DeskType = "en_l"
	DeskTypeStraight DeskType = "recto"
	DeskTypeSwivel   DeskType = "giratorio"
	DeskTypeProposal DeskType = "prefiero_propuesta"
)

type LightingPreference string

const (
	LightingWarm    LightingPreference = "warm"
	LightingNeutral LightingPreference = "neutral"
	LightingCold    LightingPreference = "cold"
)

type BudgetRange string

const (
	Budget120To180 BudgetRange = "120-180k"
	Budget180To250 BudgetRange = "180-250k"
	Budget250To330 BudgetRange = "250-330k"
	Budget330Plus  BudgetRange = "330k+"
)

var (
	estimatedDateValues = []string{
		string(EstimatedDateASAP), string(EstimatedDateTwoToThree), string(EstimatedDateThreeToSix),
	}
	deskTypeValues = []string{
		string(DeskTypeCorner), string(DeskTypeL), string(DeskTypeStraight),
		string(DeskTypeSwivel), string(DeskTypeProposal),
	}
	lightingValues = []string{
		string(LightingWarm), string(LightingNeutral), string(LightingCold),
	}
	budgetValues = []string{
		string(Budget120To180), string(Budget180To250), string(Budget250To330), string(Budget330Plus),
	}
)

// Opções fixas dos grupos de checkboxes.
var (
	AreaOptions = []string{
		"Recepción",
		"Sala de espera",
		"Consultorio médico",
		"Procedimientos",
		"Baño",
		"Oficina administrativa",
		"Almacenaje",
	}

	SpecificationOptions = []string{
		"Almacenamiento cerca de mi escritorio",
		"Archivero o cajonera con llave",
		"Display para productos",
		"Basurero escondido",
		"Espacio para frigobar",
		"Espacio para destacar diplomas",
		"Área de lavado con tarja médica",
		"Iluminación regulable",
		"Zona de café (en recepción)",
		"Almacén de blancos",
		"Espejo de cuerpo completo",
	}

	CabinetTypeOptions = []string{
		"Colgante",
		"Abierto",
		"Cerrado",
		"Mixto",
	}

	StyleOptions = []string{
		"Minimalista",
		"Contemporáneo",
		"Cálido",
		"Nórdico",
		"Luxury Boutique",
		"Natural u orgánico",
	}
)

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
