package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/participants-admin/middleware"
	"github.com/Dosada05/participants-admin/services"
)

type ParticipantHandler struct {
	participantService services.ParticipantService
}

func NewParticipantHandler(ps services.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{
		participantService: ps,
	}
}

// Table godoc
// @Summary Participant table view
// @Tags participants
// @Description Колонки, строки, видимость колонок и баннеры для экрана участников.
// @Produce json
// @Success 200 {object} models.TableView
// @Failure 401 {object} map[string]string "Неавторизован"
// @Security BearerAuth
// @Router /participants [get]
func (h *ParticipantHandler) Table(w http.ResponseWriter, r *http.Request) {
	viewerRole, err := middleware.GetUserRoleFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user role")
		return
	}

	view, err := h.participantService.Table(r.Context(), viewerRole)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Add godoc
// @Summary Add a participant
// @Tags participants
// @Accept json
// @Produce json
// @Param body body services.AddParticipantInput true "Login and role"
// @Success 201 {object} map[string]interface{} "Участник добавлен"
// @Failure 400 {object} map[string]string "Некорректный JSON"
// @Failure 422 {object} map[string]string "Пустой логин, роль не выбрана или пустое тело"
// @Security BearerAuth
// @Router /participants [post]
func (h *ParticipantHandler) Add(w http.ResponseWriter, r *http.Request) {
	// Пустое тело то же, что пустая форма: сервис вернёт 422 с баннером.
	var input services.AddParticipantInput
	if err := readJSON(w, r, &input); err != nil && !errors.Is(err, errEmptyBody) {
		badRequestResponse(w, r, err)
		return
	}

	participant, err := h.participantService.Add(actorContext(r), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"participant": participant}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Get godoc
// @Summary Get a participant
// @Tags participants
// @Produce json
// @Param participantID path int true "Participant ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Участник не найден"
// @Security BearerAuth
// @Router /participants/{participantID} [get]
func (h *ParticipantHandler) Get(w http.ResponseWriter, r *http.Request) {
	participantID, err := getIDFromURL(r, "participantID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	participant, err := h.participantService.Get(r.Context(), participantID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"participant": participant}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Edit godoc
// @Summary Edit a participant
// @Tags participants
// @Description Меняются только переданные поля, id сохраняется.
// @Accept json
// @Produce json
// @Param participantID path int true "Participant ID"
// @Param body body services.UpdateParticipantInput true "Changed fields"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Участник не найден"
// @Failure 422 {object} map[string]string "Неизвестная роль"
// @Security BearerAuth
// @Router /participants/{participantID} [put]
func (h *ParticipantHandler) Edit(w http.ResponseWriter, r *http.Request) {
	participantID, err := getIDFromURL(r, "participantID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateParticipantInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	participant, err := h.participantService.Edit(actorContext(r), participantID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"participant": participant}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Delete godoc
// @Summary Delete a participant
// @Tags participants
// @Param participantID path int true "Participant ID"
// @Success 204 "Участник удалён"
// @Failure 404 {object} map[string]string "Участник не найден"
// @Security BearerAuth
// @Router /participants/{participantID} [delete]
func (h *ParticipantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	participantID, err := getIDFromURL(r, "participantID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.participantService.Delete(actorContext(r), participantID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Roles godoc
// @Summary Assignable roles with tooltips
// @Tags participants
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /participants/roles [get]
func (h *ParticipantHandler) Roles(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"roles": h.participantService.Roles()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Export godoc
// @Summary Export the participant table to object storage
// @Tags participants
// @Produce json
// @Success 201 {object} services.ExportResult
// @Failure 503 {object} map[string]string "Хранилище не настроено"
// @Security BearerAuth
// @Router /participants/export [post]
func (h *ParticipantHandler) Export(w http.ResponseWriter, r *http.Request) {
	res, err := h.participantService.Export(actorContext(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, res, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
