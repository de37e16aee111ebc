package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

func Serialize(b *Brief) ([]byte, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: brief nil", ErrSchemaMismatch)
	}
	return json.Marshal(b)
}

// Deserialize reconstrói um brief e revalida-o com as mesmas regras de
// ApplyStep e Complete. Qualquer divergência de esquema devolve
// ErrSchemaMismatch e nunca um brief parcial.
func Deserialize(data []byte) (*Brief, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	if err := sameKeys("brief", top, briefKeys); err != nil {
		return nil, err
	}
	for i, sample := range stepSamples {
		key := fmt.Sprintf("step%d", i+1)
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(top[key], &fields); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSchemaMismatch, key, err)
		}
		if err := sameKeys(key, fields, keysOf(sample)); err != nil {
			return nil, err
		}
	}

	var b Brief
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	if err := b.checkIntegrity(); err != nil {
		return nil, err
	}
	return &b, nil
}

func (b *Brief) checkIntegrity() error {
	if _, err := uuid.Parse(b.ID); err != nil {
		return fmt.Errorf("%w: id inválido", ErrSchemaMismatch)
	}
	if b.Timestamp.IsZero() {
		return fmt.Errorf("%w: timestamp vacío", ErrSchemaMismatch)
	}
	if b.Status != StatusDraft && b.Status != StatusCompleted {
		return fmt.Errorf("%w: status %q", ErrSchemaMismatch, b.Status)
	}

	if b.AppliedSteps == nil {
		b.AppliedSteps = []int{}
	}
	if !sort.IntsAreSorted(b.AppliedSteps) {
		return fmt.Errorf("%w: appliedSteps fuera de orden", ErrSchemaMismatch)
	}
	for i, n := range b.AppliedSteps {
		if n < 1 || n > StepCount || (i > 0 && b.AppliedSteps[i-1] == n) {
			return fmt.Errorf("%w: appliedSteps %v", ErrSchemaMismatch, b.AppliedSteps)
		}
	}

	for i, s := range b.steps() {
		complete := b.IsCompleted() || b.IsApplied(i+1)
		if errs := s.validate(complete); len(errs) > 0 {
			return fmt.Errorf("%w: %s", ErrSchemaMismatch, joinFieldErrors(errs))
		}
	}
	return nil
}

var (
	briefKeys = []string{
		"id", "timestamp", "status",
		"step1", "step2", "step3", "step4", "step5", "step6", "step7",
		"appliedSteps",
	}
	stepSamples = []StepData{
		BasicInfo{}, GeneralInfo{}, SpecialRequirements{}, FurniturePreferences{},
		StyleColors{}, Lighting{}, Budget{},
	}
)

func keysOf(v any) []string {
	raw, _ := json.Marshal(v)
	var m map[string]json.RawMessage
	_ = json.Unmarshal(raw, &m)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func sameKeys(scope string, got map[string]json.RawMessage, want []string) error {
	if len(got) != len(want) {
		return fmt.Errorf("%w: %s tiene %d campos, se esperaban %d", ErrSchemaMismatch, scope, len(got), len(want))
	}
	for _, k := range want {
		if _, ok := got[k]; !ok {
			return fmt.Errorf("%w: falta %s.%s", ErrSchemaMismatch, scope, k)
		}
	}
	return nil
}
