package form

import "github.com/comexhub/comex-go/internal/approval"

type CreateFormInput struct {
	FormType string `json:"form_type" binding:"required"`
	EventID  uint   `json:"event_id" binding:"required"`
	Title    string `json:"title" binding:"required,max=200"`
	Body     string `json:"body"`
}

// UpdateFormInput is the owner's revision of a not-yet-approved form.
// Applying it reopens the form: every collected signature is cleared.
type UpdateFormInput struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

type RejectInput struct {
	Remark string `json:"remark" binding:"required"`
}

// StatusDTO is the derived approval tuple returned with every mutation
// and detail read.
type StatusDTO struct {
	RequiredRoles []approval.Role `json:"required_roles"`
	ApprovedRoles []approval.Role `json:"approved_roles"`
	NextRole      *approval.Role  `json:"next_role"`
	IsComplete    bool            `json:"is_complete"`
}

// DecisionResponse carries the updated status plus a toast message.
type DecisionResponse struct {
	Form    *Form     `json:"form"`
	Status  StatusDTO `json:"status"`
	Message string    `json:"message"`
}

// DetailDTO is a form plus its derived status.
type DetailDTO struct {
	Form   *Form     `json:"form"`
	Status StatusDTO `json:"status"`
}

// NewStatusDTO converts engine output into the wire shape (empty next
// role becomes JSON null).
func NewStatusDTO(flow approval.Flow, st approval.State) StatusDTO {
	dto := StatusDTO{
		RequiredRoles: flow.Roles,
		ApprovedRoles: st.Approved,
		IsComplete:    st.Complete,
	}
	if st.NextRole != "" {
		next := st.NextRole
		dto.NextRole = &next
	}
	return dto
}
