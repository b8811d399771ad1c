package dto

// Auth error codes the POS client keys its behavior on. TOKEN_EXPIRED is the
// only code that invites a refresh attempt; everything else means re-login.
const (
	CodeTokenMissing        = "TOKEN_MISSING"
	CodeTokenExpired        = "TOKEN_EXPIRED"
	CodeRefreshTokenMissing = "REFRESH_TOKEN_MISSING"
	CodeRefreshTokenExpired = "REFRESH_TOKEN_EXPIRED"
)

// Response is the envelope every endpoint answers with; the HTTP status
// mirrors Success.
type Response struct {
	Success      bool   `json:"success"`
	Data         any    `json:"data,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	ErrorCode    string `json:"errorCode,omitempty"`
}

func Success(data any) Response {
	return Response{Success: true, Data: data}
}

func Error(message string) Response {
	return Response{Success: false, ErrorMessage: message}
}

func ErrorWithCode(code string, message string) Response {
	return Response{Success: false, ErrorCode: code, ErrorMessage: message}
}
