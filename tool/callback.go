package tool

import (
	"github.com/gin-gonic/gin"
)

// Console API response envelopes. Failures answer {"error": msg},
// payloads ride under "data", bare acknowledgements are {"status": "ok"}.

func FastReturnError(msg string) gin.H {
	return gin.H{"error": msg}
}

func FastReturnSuccess() gin.H {
	return gin.H{"status": "ok"}
}

func FastReturnSuccessWithData(data any) gin.H {
	return gin.H{"data": data}
}
