package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// JSONAbort is JSONError for middleware: it also stops the handler chain.
func JSONAbort(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"success": false, "error": message})
}

// ChatReply is the chat endpoints' envelope. Buttons is always an array so the
// front-end never has to nil-check it.
func ChatReply(c *gin.Context, code int, reply string, buttons []Button, custom interface{}) {
	if buttons == nil {
		buttons = []Button{}
	}
	c.JSON(code, gin.H{"reply": reply, "buttons": buttons, "custom": custom})
}
