package request

import "swimbooking/internal/usecase/commands"

type CloseSessionRequest struct {
	Reason string `json:"reason" binding:"required,oneof=pool_closed instructor_unavailable other"`
	Notes  string `json:"notes" binding:"max=1000"`
}

func (r CloseSessionRequest) ToInput() commands.CloseSessionInput {
	return commands.CloseSessionInput{Reason: r.Reason, Notes: r.Notes}
}
