package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/xavierca1/saint-brief/internal/entity"
	"github.com/xavierca1/saint-brief/internal/infra/http/middleware"
	"github.com/xavierca1/saint-brief/internal/pkg/logger"
	"github.com/xavierca1/saint-brief/internal/report"
	"github.com/xavierca1/saint-brief/internal/usecase"
)

const (
	SessionHeader = "X-Brief-Session"
	SessionCookie = "brief_session"

	maxBodyBytes = 64 << 10
)

type BriefHandler struct {
	StartUC     *usecase.StartBriefUseCase
	GetUC       *usecase.GetBriefUseCase
	ApplyStepUC *usecase.ApplyStepUseCase
	ClearUC     *usecase.ClearDraftUseCase
	PreviewUC   *usecase.PreviewBriefUseCase
	SubmitUC    *usecase.SubmitBriefUseCase
	InitSheetUC *usecase.InitSheetUseCase
	Log         *logger.Logger
}

type SubmitBriefRequest struct {
	Step7 json.RawMessage `json:"step7,omitempty"`
}

// POST /brief
func (h *BriefHandler) Start(w http.ResponseWriter, r *http.Request) {
	key, ok := h.sessionKey(w, r, true)
	if !ok {
		return
	}

	out, err := h.StartUC.Execute(r.Context(), key)
	if err != nil {
		h.writeError(w, err)
		return
	}

	status := http.StatusOK
	if !out.Resumed {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]any{
		"success":       true,
		"sessionKey":    key,
		"brief":         out.Brief,
		"lastSaved":     out.LastSaved,
		"hasStoredData": out.HasStoredData,
		"resumed":       out.Resumed,
		"missing":       out.Missing,
	})
}

// GET /brief
func (h *BriefHandler) Get(w http.ResponseWriter, r *http.Request) {
	key, ok := h.sessionKey(w, r, false)
	if !ok {
		return
	}

	out, err := h.GetUC.Execute(r.Context(), key)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"brief":         out.Brief,
		"lastSaved":     out.LastSaved,
		"hasStoredData": out.HasStoredData,
		"missing":       out.Missing,
	})
}

// PUT /brief/steps/{step}
func (h *BriefHandler) ApplyStep(w http.ResponseWriter, r *http.Request) {
	step, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Paso inválido")
		return
	}

	key, ok := h.sessionKey(w, r, true)
	if !ok {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeFailure(w, http.StatusRequestEntityTooLarge, "Solicitud demasiado grande")
		return
	}

	out, err := h.ApplyStepUC.Execute(r.Context(), usecase.ApplyStepInput{
		Key:  key,
		Step: step,
		Data: body,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"brief":   out.Brief,
		"missing": out.Missing,
	})
}

// GET /brief/preview
func (h *BriefHandler) Preview(w http.ResponseWriter, r *http.Request) {
	key, ok := h.sessionKey(w, r, false)
	if !ok {
		return
	}

	out, err := h.PreviewUC.Execute(r.Context(), key)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"preview": out.View,
		"missing": out.Missing,
	})
}

// GET /brief/scope-draft?lang=es|en
func (h *BriefHandler) ScopeDraft(w http.ResponseWriter, r *http.Request) {
	key, ok := h.sessionKey(w, r, false)
	if !ok {
		return
	}

	text, err := h.PreviewUC.ScopeDraft(r.Context(), key, report.ParseLanguage(r.URL.Query().Get("lang")))
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, text)
}

// GET /brief/export
func (h *BriefHandler) Export(w http.ResponseWriter, r *http.Request) {
	key, ok := h.sessionKey(w, r, false)
	if !ok {
		return
	}

	out, err := h.GetUC.Execute(r.Context(), key)
	if err != nil {
		h.writeError(w, err)
		return
	}

	data, err := entity.Serialize(out.Brief)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="brief-%s.json"`, out.Brief.ID))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// DELETE /brief
func (h *BriefHandler) Clear(w http.ResponseWriter, r *http.Request) {
	key, ok := h.sessionKey(w, r, false)
	if !ok {
		return
	}

	if err := h.ClearUC.Execute(r.Context(), key); err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Borrador eliminado",
	})
}

// POST /brief/submit
func (h *BriefHandler) Submit(w http.ResponseWriter, r *http.Request) {
	key, ok := h.sessionKey(w, r, false)
	if !ok {
		return
	}

	var req SubmitBriefRequest
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeFailure(w, http.StatusRequestEntityTooLarge, "Solicitud demasiado grande")
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			writeFailure(w, http.StatusBadRequest, "JSON inválido")
			return
		}
	}

	out, err := h.SubmitUC.Execute(r.Context(), usecase.SubmitBriefInput{
		Key:   key,
		Step7: req.Step7,
	})
	if err != nil {
		recordSubmissionFailure(err)
		h.writeError(w, err)
		return
	}
	middleware.RecordSubmission("success")

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": out.Message,
		"briefId": out.Brief.ID,
		"brief":   out.Brief,
	})
}

// POST /sheets/init
func (h *BriefHandler) InitSheet(w http.ResponseWriter, r *http.Request) {
	out, err := h.InitSheetUC.Execute(r.Context())
	if err != nil {
		var ext *usecase.ExternalServiceError
		if errors.As(err, &ext) {
			for _, s := range ext.Services {
				middleware.RecordIntegrationError(s)
			}
		}
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": out.Message,
		"columns": out.Columns,
	})
}

// sessionKey lê a chave do rascunho do header ou do cookie. Com issue=true
// uma chave nova é emitida quando a requisição não traz nenhuma; sem ela a
// resposta já sai como 404.
func (h *BriefHandler) sessionKey(w http.ResponseWriter, r *http.Request, issue bool) (string, bool) {
	key := r.Header.Get(SessionHeader)
	if key == "" {
		if c, err := r.Cookie(SessionCookie); err == nil {
			key = c.Value
		}
	}

	if key == "" {
		if !issue {
			writeFailure(w, http.StatusNotFound, "No hay un brief en curso")
			return "", false
		}
		key = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    key,
			Path:     "/",
			MaxAge:   30 * 24 * 60 * 60,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	if _, err := uuid.Parse(key); err != nil {
		writeFailure(w, http.StatusBadRequest, "Sesión inválida")
		return "", false
	}

	w.Header().Set(SessionHeader, key)
	return key, true
}

func (h *BriefHandler) writeError(w http.ResponseWriter, err error) {
	var (
		validation *entity.ValidationError
		incomplete *entity.IncompleteBriefError
		external   *usecase.ExternalServiceError
		domain     *usecase.DomainError
	)

	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success": false,
			"message": "Datos inválidos en el paso " + strconv.Itoa(validation.Step),
			"step":    validation.Step,
			"errors":  validation.Fields,
		})
	case errors.As(err, &incomplete):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success": false,
			"message": "Faltan campos obligatorios",
			"steps":   incomplete.Steps(),
			"errors":  incomplete.Missing,
		})
	case errors.Is(err, entity.ErrBriefCompleted):
		writeFailure(w, http.StatusConflict, err.Error())
	case errors.Is(err, entity.ErrUnknownStep):
		writeFailure(w, http.StatusBadRequest, "Paso inválido")
	case errors.Is(err, usecase.ErrDraftNotFound):
		writeFailure(w, http.StatusNotFound, "No hay un brief en curso")
	case errors.As(err, &external):
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"success":  false,
			"message":  external.Error(),
			"services": external.Services,
		})
	case errors.As(err, &domain):
		status := http.StatusBadRequest
		if domain.Code == "DRAFT_NOT_FOUND" {
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]any{
			"success": false,
			"message": domain.Message,
			"code":    domain.Code,
		})
	default:
		h.Log.Error("❌ erro inesperado no handler", "error", err)
		writeFailure(w, http.StatusInternalServerError, "Error interno del servidor")
	}
}

func recordSubmissionFailure(err error) {
	var (
		incomplete *entity.IncompleteBriefError
		validation *entity.ValidationError
		external   *usecase.ExternalServiceError
	)
	switch {
	case errors.As(err, &incomplete), errors.As(err, &validation):
		middleware.RecordSubmission("incomplete")
	case errors.As(err, &external):
		middleware.RecordSubmission("integration_error")
		for _, s := range external.Services {
			middleware.RecordIntegrationError(s)
		}
	default:
		middleware.RecordSubmission("error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}
