package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/saint-brief/internal/entity"
	"github.com/xavierca1/saint-brief/internal/testutil"
)

func findField(t *testing.T, v View, label string) Field {
	t.Helper()
	for _, s := range v.Sections {
		for _, f := range s.Fields {
			if f.Label == label {
				return f
			}
		}
	}
	t.Fatalf("campo %q não encontrado", label)
	return Field{}
}

func hasField(v View, label string) bool {
	for _, s := range v.Sections {
		for _, f := range s.Fields {
			if f.Label == label {
				return true
			}
		}
	}
	return false
}

func TestBuildViewUsesLabels(t *testing.T) {
	b := testutil.CompleteBrief(t)
	b.Step4.CabinetType = entity.NewSelection("Cerrado", entity.OtherOption)
	b.Step4.CabinetTypeOther = "Vitrina"

	v := BuildView(b, time.UTC)

	assert.Len(t, v.Sections, 7)
	assert.Equal(t, "Dra. Ana López", v.ClientName)
	assert.Equal(t, "$250,000 – $330,000", v.Budget)
	assert.Equal(t, "Luz cálida", findField(t, v, "Preferencia").Value)
	assert.Equal(t, "80 m²", findField(t, v, "Metros Cuadrados").Value)
	assert.Equal(t, "Cerrado, Otro (Vitrina)", findField(t, v, "Tipo de Gabinetes").Value)

	// opcionais vazios ficam de fora
	assert.False(t, hasField(v, "Otra Área"))
	assert.False(t, hasField(v, "Colores a Evitar"))
}

func TestBuildViewEmptyBrief(t *testing.T) {
	v := BuildView(entity.NewEmptyBrief(), nil)

	assert.Equal(t, NotSpecified, v.ClientName)
	assert.Equal(t, NotSpecified, v.Budget)
	assert.Equal(t, NotSpecified, findField(t, v, "Fecha Estimada").Value)
	assert.Equal(t, NotSpecified, findField(t, v, "Equipo Médico").Value)
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "Nuevo Brief Creativo - Dra. Ana López (80 m²)", Subject(testutil.CompleteBrief(t)))
	assert.Equal(t, "Nuevo Brief Creativo - Cliente (N/A m²)", Subject(entity.NewEmptyBrief()))
}

func TestScopeDraft(t *testing.T) {
	b := testutil.CompleteBrief(t)
	at := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)

	es := ScopeDraft(b, Spanish, at)
	lines := strings.Split(es, "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "DRAFT DE ALCANCE - BRIEF CREATIVO DE DISEÑO DE INTERIORES", lines[0])
	assert.Contains(t, es, "Cliente: Dra. Ana López")
	assert.Contains(t, es, "Metros Cuadrados: 80 m²")
	assert.Contains(t, es, "Rango de Presupuesto: $250,000 – $330,000")
	assert.Contains(t, es, "- Plan de iluminación")
	assert.Contains(t, es, "Generado el: 04/03/2025")
	assert.True(t, strings.HasSuffix(es, "ID Brief: "+b.ID))

	en := ScopeDraft(b, English, at)
	assert.Contains(t, en, "Client: Dra. Ana López")
	assert.Contains(t, en, "Budget Range: $250,000 – $330,000")
}

func TestScopeDraftFallbacks(t *testing.T) {
	text := ScopeDraft(entity.NewEmptyBrief(), Spanish, time.Now())
	assert.Contains(t, text, "Teléfono: No especificado")
	assert.Contains(t, text, "Rango de Presupuesto: No especificado")
}

func TestParseLanguage(t *testing.T) {
	assert.Equal(t, English, ParseLanguage("EN"))
	assert.Equal(t, Spanish, ParseLanguage("es"))
	assert.Equal(t, Spanish, ParseLanguage("fr"))
	assert.Equal(t, Spanish, ParseLanguage(""))
}
