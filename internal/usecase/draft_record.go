package usecase

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/xavierca1/saint-brief/internal/entity"
)

const DraftSchemaVersion = "2.0.0"

// DraftRecord é o formato gravado em qualquer DraftStore.
type DraftRecord struct {
	Brief         json.RawMessage `json:"brief"`
	LastSaved     time.Time       `json:"lastSaved"`
	SchemaVersion string          `json:"schemaVersion"`
}

func EncodeDraft(b *entity.Brief, savedAt time.Time) ([]byte, error) {
	raw, err := entity.Serialize(b)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar brief: %w", err)
	}
	return json.Marshal(DraftRecord{
		Brief:         raw,
		LastSaved:     savedAt.UTC(),
		SchemaVersion: DraftSchemaVersion,
	})
}

// DecodeDraft valida a versão do registro e reconstrói o brief. Qualquer
// divergência de esquema vira entity.ErrSchemaMismatch.
func DecodeDraft(data []byte) (*entity.Brief, time.Time, error) {
	var rec DraftRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: registro ilegível: %v", entity.ErrSchemaMismatch, err)
	}
	if rec.SchemaVersion != DraftSchemaVersion {
		return nil, time.Time{}, fmt.Errorf("%w: versão %q", entity.ErrSchemaMismatch, rec.SchemaVersion)
	}
	b, err := entity.Deserialize(rec.Brief)
	if err != nil {
		return nil, time.Time{}, err
	}
	return b, rec.LastSaved, nil
}
