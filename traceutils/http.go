package traceutils

import (
	"net/http"
	"net/http/httputil"

	"go.uber.org/zap"

	"github.com/bitmark-inc/image-gallery/log"
)

// DumpRequest is a alias to dump http requests to string.
func DumpRequest(req *http.Request) string {
	dump, err := httputil.DumpRequest(req, true)
	if err != nil {
		log.Error("fail to dump request", zap.Error(err))
	}

	return string(dump)
}

// DumpResponse is a alias to dump http responses to string.
func DumpResponse(resp *http.Response) string {
	dump, err := httputil.DumpResponse(resp, true)
	if err != nil {
		log.Error("fail to dump response", zap.Error(err))
	}

	return string(dump)
}
