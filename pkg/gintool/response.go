package gintool

import (
	"net/http"

	"github.com/codearena/contest_relay/constants"
	"github.com/gin-gonic/gin"
)

type Response struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	RequestID string `json:"request_id"`
}

func GinResponse(c *gin.Context, resp *Response) {
	resp.RequestID = c.GetHeader(constants.HeaderRequestIDKey)
	c.JSON(http.StatusOK, resp)
}
