package usecase

import (
	"encoding/json"
	"time"

	"github.com/xavierca1/saint-brief/internal/entity"
	"github.com/xavierca1/saint-brief/internal/report"
)

type BriefOutput struct {
	Brief         *entity.Brief       `json:"brief"`
	LastSaved     *time.Time          `json:"lastSaved"`
	HasStoredData bool                `json:"hasStoredData"`
	Resumed       bool                `json:"resumed"`
	Missing       []entity.FieldError `json:"missing"`
}

type ApplyStepInput struct {
	Key  string
	Step int
	Data json.RawMessage
}

type SubmitBriefInput struct {
	Key string
	// Step7 é opcional: o último passo pode chegar junto com o envio.
	Step7 json.RawMessage
}

type SubmitBriefOutput struct {
	Brief   *entity.Brief `json:"brief"`
	Message string        `json:"message"`
}

type PreviewOutput struct {
	View    report.View         `json:"preview"`
	Missing []entity.FieldError `json:"missing"`
}

type InitSheetOutput struct {
	Columns int    `json:"columns"`
	Message string `json:"message"`
}
