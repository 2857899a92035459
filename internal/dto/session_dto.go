package dto

type CreateSessionResponse struct {
	SessionId string `json:"session_id"`
	Folder    string `json:"folder"`
	Token     string `json:"token"`
}
