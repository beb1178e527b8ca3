package gintool

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/codearena/contest_relay/constants"
	"github.com/codearena/contest_relay/model"
	"github.com/gin-gonic/gin"
)

// ExtractOperator 从 Gin 上下文提取操作人 ID
func ExtractOperator(c *gin.Context, p model.CommonParamInterface) error {
	userID := c.GetHeader(constants.HeaderUserIDKey)
	if userID == "" {
		GinResponse(c, &Response{
			Code:    http.StatusBadRequest,
			Message: "X-User-ID header is required",
		})
		return fmt.Errorf("X-User-ID header is required")
	}
	operator, err := strconv.ParseUint(userID, 10, 64)
	if err != nil {
		GinResponse(c, &Response{
			Code:    http.StatusBadRequest,
			Message: fmt.Sprintf("X-User-ID header is not a valid uint64: %s", err.Error()),
		})
		return fmt.Errorf("X-User-ID header is not a valid uint64, X-User-ID: %s, err: %w", userID, err)
	}
	p.SetOperator(operator)
	return nil
}
