package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bitmark-inc/image-gallery/log"
	"github.com/bitmark-inc/image-gallery/traceutils"
)

func abortWithError(c *gin.Context, code int, message string, traceErr error) {
	log.Error(message, zap.Error(traceErr), log.SourceAPI)
	traceutils.CaptureException(c, traceErr)

	body := gin.H{"error": message}
	if traceErr != nil {
		body["details"] = traceErr.Error()
	}

	c.AbortWithStatusJSON(code, body)
}
