package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/luanacfraga/tooldo/pkg/domain/model"
	"github.com/luanacfraga/tooldo/pkg/domain/types"
	"github.com/luanacfraga/tooldo/pkg/usecase"
	"github.com/luanacfraga/tooldo/pkg/utils/errutil"
	"github.com/luanacfraga/tooldo/pkg/utils/safe"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	data, err := json.Marshal(body)
	if err != nil {
		_ = errutil.Handle(r.Context(), err, "failed to encode response")
		return
	}
	safe.Write(r.Context(), w, data)
}

// writeError maps domain errors to HTTP status codes. Unknown errors are
// logged with their stack and reported as a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrActionNotFound):
		writeJSON(w, r, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, model.ErrTitleRequired),
		errors.Is(err, model.ErrInvalidDateRange),
		errors.Is(err, model.ErrBlockedReasonRequired),
		errors.Is(err, model.ErrInvalidStatus):
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func companyID(r *http.Request) types.CompanyID {
	return types.CompanyID(chi.URLParam(r, "companyID"))
}

func actionID(r *http.Request) types.ActionID {
	return types.ActionID(chi.URLParam(r, "actionID"))
}

func (s *Server) handleCreateAction(w http.ResponseWriter, r *http.Request) {
	var req createActionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Priority != "" && !types.Priority(req.Priority).IsValid() {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid priority"})
		return
	}

	action, order, err := s.uc.Action.CreateAction(r.Context(), companyID(r), req.toInput())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]any{
		"action": toActionResponse(action),
		"order":  toOrderResponse(order),
	})
}

func (s *Server) handleGetAction(w http.ResponseWriter, r *http.Request) {
	action, order, err := s.uc.Action.GetActionWithOrder(r.Context(), companyID(r), actionID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := map[string]any{"action": toActionResponse(action)}
	if order != nil {
		resp["order"] = toOrderResponse(order)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleListActions(w http.ResponseWriter, r *http.Request) {
	actions, err := s.uc.Action.ListActions(r.Context(), companyID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := make([]actionResponse, 0, len(actions))
	for _, a := range actions {
		resp = append(resp, toActionResponse(a))
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleUpdateAction(w http.ResponseWriter, r *http.Request) {
	var req updateActionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Priority != nil && !types.Priority(*req.Priority).IsValid() {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid priority"})
		return
	}

	action, err := s.uc.Action.UpdateAction(r.Context(), companyID(r), actionID(r), req.toInput())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toActionResponse(action))
}

func (s *Server) handleDeleteAction(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Action.DeleteAction(r.Context(), companyID(r), actionID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMoveAction(w http.ResponseWriter, r *http.Request) {
	var req moveActionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.uc.Action.MoveAction(r.Context(), companyID(r), usecase.MoveActionInput{
		ActionID:     actionID(r),
		TargetStatus: types.ActionStatus(req.TargetStatus),
		Position:     req.Position,
		MovedByID:    req.MovedByID,
		Notes:        req.Notes,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, moveActionResponse{
		Action:   toActionResponse(result.Action),
		Order:    toOrderResponse(result.Order),
		Movement: toMovementResponse(result.Movement),
	})
}

func (s *Server) handleBlockAction(w http.ResponseWriter, r *http.Request) {
	var req blockActionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	action, err := s.uc.Action.BlockAction(r.Context(), companyID(r), actionID(r), req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toActionResponse(action))
}

func (s *Server) handleUnblockAction(w http.ResponseWriter, r *http.Request) {
	action, err := s.uc.Action.UnblockAction(r.Context(), companyID(r), actionID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toActionResponse(action))
}

func (s *Server) handleListMovements(w http.ResponseWriter, r *http.Request) {
	movements, err := s.uc.Action.ListMovements(r.Context(), companyID(r), actionID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := make([]movementResponse, 0, len(movements))
	for _, m := range movements {
		resp = append(resp, toMovementResponse(m))
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	board, err := s.uc.Board.GetBoard(r.Context(), companyID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toBoardResponse(board))
}
