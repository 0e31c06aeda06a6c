package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/apperrors"
)

// ErrorBody is the error half of the envelope.
type ErrorBody struct {
	Code     string   `json:"code"`
	Messages []string `json:"messages"`
}

// Envelope is the uniform wire wrapper for every API response. Exactly one of
// Data and Error is populated.
type Envelope struct {
	Data  any        `json:"data"`
	Error *ErrorBody `json:"error,omitempty"`
}

// Respond writes a success envelope.
func Respond(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Data: data})
}

// Fail classifies err and writes an error envelope. The real cause of
// unclassified failures is logged server-side only.
func Fail(c *gin.Context, err error) {
	status, code, messages := apperrors.Classify(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, Envelope{Error: &ErrorBody{Code: code, Messages: messages}})
}

// AbortWithError writes an error envelope and stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	Fail(c, err)
	c.Abort()
}
