package httperr

import (
	"encoding/json"
	"maps"

	"swimbooking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// Response is the error envelope: {"error": code, "message": msg, ...context}.
type Response struct {
	Status  int
	Code    string
	Message string
	Context map[string]any
}

func (r Response) MarshalJSON() ([]byte, error) {
	body := make(map[string]any, len(r.Context)+2)
	maps.Copy(body, r.Context)
	body["error"] = r.Code
	body["message"] = r.Message
	return json.Marshal(body)
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, code, msg string, context map[string]any) {
	if err == nil {
		err = errs.New(msg)
	}

	resp := Response{Status: status, Code: code, Message: msg, Context: context}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
