package router

import "github.com/gin-gonic/gin"

// Module is a self-contained route bundle (auth, boards, tasks). Each
// module attaches its own handlers and per-group middleware to the
// router group it is given.
type Module interface {
	Register(rg *gin.RouterGroup)
}
