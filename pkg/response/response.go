package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/ecommerce-backend/pkg/apperr"
)

// Envelope is the response body shape shared by every endpoint:
// {success, message?, ...payload}. Payload keys (user, product, products,
// totalProducts, newProducts, topRatedProducts) are merged in as-is.
type Envelope map[string]any

// OK writes a success envelope with optional payload fields.
func OK(c *gin.Context, status int, message string, payload Envelope) {
	if status == 0 {
		status = http.StatusOK
	}
	body := Envelope{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// Fail writes a failure envelope with optional detail fields.
func Fail(c *gin.Context, status int, message string, details any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	body := Envelope{"success": false, "message": message}
	if details != nil {
		body["errors"] = details
	}
	c.JSON(status, body)
}

// FromError maps an application error onto the envelope. Unclassified
// errors surface as a redacted 500.
func FromError(c *gin.Context, err error) {
	Fail(c, apperr.StatusOf(err), apperr.MessageOf(err), nil)
}

// AbortFromError is FromError for middleware, stopping the handler chain.
func AbortFromError(c *gin.Context, err error) {
	body := Envelope{"success": false, "message": apperr.MessageOf(err)}
	c.AbortWithStatusJSON(apperr.StatusOf(err), body)
}
