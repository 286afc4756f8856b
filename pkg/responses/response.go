package responses

import (
	"github.com/gin-gonic/gin"
)

// Response is the unified API envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Detail  string      `json:"detail,omitempty"` // optional detail for validation errors
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a success envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage writes a success envelope with a custom message.
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(200, Response{
		Code:    CodeSuccess,
		Message: message,
		Data:    data,
	})
}

// Error writes an error envelope. Business errors keep their code; everything
// else becomes an internal error. HTTP status is always 200, the business code
// lives in response.code.
func Error(c *gin.Context, err error) {
	if appErr, ok := err.(*AppError); ok {
		c.JSON(200, Response{
			Code:    appErr.Code,
			Message: appErr.Message,
		})
		return
	}

	c.JSON(200, Response{
		Code:    CodeInternalError,
		Message: err.Error(),
	})
}

// ErrorWithCode writes an error envelope with an explicit code.
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(200, Response{
		Code:    code,
		Message: message,
	})
}

// ErrorWithDetail writes an error envelope with a detail string.
func ErrorWithDetail(c *gin.Context, code int, message, detail string) {
	c.JSON(200, Response{
		Code:    code,
		Message: message,
		Detail:  detail,
	})
}
