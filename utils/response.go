package utils

import "github.com/gin-gonic/gin"

// JSONResponse is the uniform envelope for every API response.
type JSONResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Respond writes a JSON response with the given HTTP status.
func Respond(ctx *gin.Context, status int, code int, message string, data interface{}) {
	ctx.JSON(status, JSONResponse{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Success returns a standard success response.
func Success(ctx *gin.Context, data interface{}) {
	Respond(ctx, 200, 0, "success", data)
}

// Error returns a standard error response.
func Error(ctx *gin.Context, status int, code int, message string) {
	Respond(ctx, status, code, message, nil)
}

// Fail maps a typed AppError onto the envelope, deriving the HTTP status from
// its kind. Non-AppError values fall through to a 500.
func Fail(ctx *gin.Context, code int, err error) {
	msg := "internal error"
	if ae, ok := err.(*AppError); ok {
		msg = ae.Message
	} else if err != nil {
		msg = err.Error()
	}
	Respond(ctx, HTTPStatus(err), code, msg, nil)
}
