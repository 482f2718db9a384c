package main

import (
	"gmotors/src/types"
	"gmotors/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

func chatbotHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.POST("/chat", func(ctx *gin.Context) {
		var body types.ChatRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "No message provided"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"data": gin.H{"response": utils.ChatbotReply(body.Message)}})
	})
	return g
}
