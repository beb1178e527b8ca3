package web

import "github.com/gin-gonic/gin"

type Handler interface {
	Register(r *gin.Engine)
}

// AdminUserIDs 管理员操作人白名单
type AdminUserIDs []uint64
