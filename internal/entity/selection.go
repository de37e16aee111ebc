package entity

import (
	"encoding/json"
	"strings"
)

// Selection é um conjunto ordenado de opções marcadas num grupo de checkboxes.
// A ordem é a ordem de seleção e não existem duplicados: todos os construtores
// descartam valores repetidos.
type Selection struct {
	items []string
}

func NewSelection(values ...string) Selection {
	s := Selection{items: make([]string, 0, len(values))}
	for _, v := range values {
		if !s.Contains(v) {
			s.items = append(s.items, v)
		}
	}
	return s
}

func (s Selection) Values() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

func (s Selection) Len() int { return len(s.items) }

func (s Selection) Contains(value string) bool {
	for _, v := range s.items {
		if v == value {
			return true
		}
	}
	return false
}

// Toggle devolve uma nova seleção: remove o valor se já estava marcado,
// senão o acrescenta no fim.
func (s Selection) Toggle(value string) Selection {
	if s.Contains(value) {
		out := make([]string, 0, len(s.items)-1)
		for _, v := range s.items {
			if v != value {
				out = append(out, v)
			}
		}
		return Selection{items: out}
	}
	out := make([]string, len(s.items), len(s.items)+1)
	copy(out, s.items)
	return Selection{items: append(out, value)}
}

func (s Selection) Join(sep string) string {
	return strings.Join(s.items, sep)
}

func (s Selection) Equal(other Selection) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for i := range s.items {
		if s.items[i] != other.items[i] {
			return false
		}
	}
	return true
}

func (s Selection) MarshalJSON() ([]byte, error) {
	if s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}

func (s *Selection) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewSelection(values...)
	return nil
}
