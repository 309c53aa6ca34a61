package http

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/luanacfraga/tooldo/pkg/domain/model"
	"github.com/luanacfraga/tooldo/pkg/domain/types"
	"github.com/luanacfraga/tooldo/pkg/usecase"
)

// dateLayout is used for the planning dates, which carry day precision only.
const dateLayout = "2006-01-02"

// apiDate marshals as a bare calendar day.
type apiDate time.Time

func (d apiDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(d).Format(dateLayout) + `"`), nil
}

func (d *apiDate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return goerr.Wrap(err, "invalid date, expected YYYY-MM-DD")
	}
	*d = apiDate(t)
	return nil
}

type createActionRequest struct {
	Title              string         `json:"title"`
	Description        string         `json:"description,omitempty"`
	Priority           string         `json:"priority,omitempty"`
	EstimatedStartDate apiDate        `json:"estimated_start_date"`
	EstimatedEndDate   apiDate        `json:"estimated_end_date"`
	TeamID             *types.TeamID  `json:"team_id,omitempty"`
	CreatorID          types.UserID   `json:"creator_id"`
	ResponsibleID      types.UserID   `json:"responsible_id"`
}

func (req createActionRequest) toInput() usecase.CreateActionInput {
	return usecase.CreateActionInput{
		Title:              req.Title,
		Description:        req.Description,
		Priority:           types.Priority(req.Priority),
		EstimatedStartDate: time.Time(req.EstimatedStartDate),
		EstimatedEndDate:   time.Time(req.EstimatedEndDate),
		TeamID:             req.TeamID,
		CreatorID:          req.CreatorID,
		ResponsibleID:      req.ResponsibleID,
	}
}

type updateActionRequest struct {
	Title              *string        `json:"title,omitempty"`
	Description        *string        `json:"description,omitempty"`
	Priority           *string        `json:"priority,omitempty"`
	EstimatedStartDate *apiDate       `json:"estimated_start_date,omitempty"`
	EstimatedEndDate   *apiDate       `json:"estimated_end_date,omitempty"`
	ActualStartDate    *time.Time     `json:"actual_start_date,omitempty"`
	ActualEndDate      *time.Time     `json:"actual_end_date,omitempty"`
	ResponsibleID      *types.UserID  `json:"responsible_id,omitempty"`
	TeamID             *types.TeamID  `json:"team_id,omitempty"`
}

func (req updateActionRequest) toInput() usecase.UpdateActionInput {
	input := usecase.UpdateActionInput{
		Title:           req.Title,
		Description:     req.Description,
		ActualStartDate: req.ActualStartDate,
		ActualEndDate:   req.ActualEndDate,
		ResponsibleID:   req.ResponsibleID,
		TeamID:          req.TeamID,
	}
	if req.Priority != nil {
		p := types.Priority(*req.Priority)
		input.Priority = &p
	}
	if req.EstimatedStartDate != nil {
		t := time.Time(*req.EstimatedStartDate)
		input.EstimatedStartDate = &t
	}
	if req.EstimatedEndDate != nil {
		t := time.Time(*req.EstimatedEndDate)
		input.EstimatedEndDate = &t
	}
	return input
}

type moveActionRequest struct {
	TargetStatus string       `json:"target_status"`
	Position     *int         `json:"position,omitempty"`
	MovedByID    types.UserID `json:"moved_by_id"`
	Notes        *string      `json:"notes,omitempty"`
}

type blockActionRequest struct {
	Reason string `json:"reason"`
}

type actionResponse struct {
	ID                 types.ActionID `json:"id"`
	Title              string         `json:"title"`
	Description        string         `json:"description,omitempty"`
	Status             string         `json:"status"`
	Priority           string         `json:"priority"`
	EstimatedStartDate apiDate        `json:"estimated_start_date"`
	EstimatedEndDate   apiDate        `json:"estimated_end_date"`
	ActualStartDate    *time.Time     `json:"actual_start_date,omitempty"`
	ActualEndDate      *time.Time     `json:"actual_end_date,omitempty"`
	IsBlocked          bool           `json:"is_blocked"`
	BlockedReason      *string        `json:"blocked_reason,omitempty"`
	TeamID             *types.TeamID  `json:"team_id,omitempty"`
	CreatorID          types.UserID   `json:"creator_id"`
	ResponsibleID      types.UserID   `json:"responsible_id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

func toActionResponse(a *model.Action) actionResponse {
	return actionResponse{
		ID:                 a.ID,
		Title:              a.Title,
		Description:        a.Description,
		Status:             a.Status.String(),
		Priority:           a.Priority.String(),
		EstimatedStartDate: apiDate(a.EstimatedStartDate),
		EstimatedEndDate:   apiDate(a.EstimatedEndDate),
		ActualStartDate:    a.ActualStartDate,
		ActualEndDate:      a.ActualEndDate,
		IsBlocked:          a.IsBlocked,
		BlockedReason:      a.BlockedReason,
		TeamID:             a.TeamID,
		CreatorID:          a.CreatorID,
		ResponsibleID:      a.ResponsibleID,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

type orderResponse struct {
	Column      string    `json:"column"`
	Position    int       `json:"position"`
	LastMovedAt time.Time `json:"last_moved_at"`
}

func toOrderResponse(o *model.KanbanOrder) orderResponse {
	return orderResponse{
		Column:      o.Column.String(),
		Position:    o.Position,
		LastMovedAt: o.LastMovedAt,
	}
}

type movementResponse struct {
	ID         types.MovementID `json:"id"`
	ActionID   types.ActionID   `json:"action_id"`
	FromStatus string           `json:"from_status"`
	ToStatus   string           `json:"to_status"`
	MovedByID  types.UserID     `json:"moved_by_id"`
	MovedAt    time.Time        `json:"moved_at"`
	Notes      *string          `json:"notes,omitempty"`
	TimeSpent  *int64           `json:"time_spent_seconds,omitempty"`
}

func toMovementResponse(m *model.ActionMovement) movementResponse {
	return movementResponse{
		ID:         m.ID,
		ActionID:   m.ActionID,
		FromStatus: m.FromStatus.String(),
		ToStatus:   m.ToStatus.String(),
		MovedByID:  m.MovedByID,
		MovedAt:    m.MovedAt,
		Notes:      m.Notes,
		TimeSpent:  m.TimeSpent,
	}
}

type boardItemResponse struct {
	Action   actionResponse `json:"action"`
	Position int            `json:"position"`
	IsLate   bool           `json:"is_late"`
}

type boardResponse struct {
	Columns map[string][]boardItemResponse `json:"columns"`
}

func toBoardResponse(b *usecase.Board) boardResponse {
	resp := boardResponse{Columns: make(map[string][]boardItemResponse, len(b.Columns))}
	for status, items := range b.Columns {
		col := make([]boardItemResponse, 0, len(items))
		for _, item := range items {
			col = append(col, boardItemResponse{
				Action:   toActionResponse(item.Action),
				Position: item.Position,
				IsLate:   item.IsLate,
			})
		}
		resp.Columns[status.String()] = col
	}
	return resp
}

type moveActionResponse struct {
	Action   actionResponse   `json:"action"`
	Order    orderResponse    `json:"order"`
	Movement movementResponse `json:"movement"`
}
