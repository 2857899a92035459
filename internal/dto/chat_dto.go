package dto

type SendChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type ChatTurnResponse struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

type SendChatResponse struct {
	Sent  ChatTurnResponse `json:"sent"`
	Reply ChatTurnResponse `json:"reply"`
}

type GetChatHistoryResponse struct {
	History []ChatTurnResponse `json:"history"`
}
