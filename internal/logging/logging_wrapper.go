package logging

import (
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/sirupsen/logrus"
)

// LoggingWrapper adapts an error-returning handler into an http.HandlerFunc
// that logs its start, completion and failure.
func LoggingWrapper(
	loggingName string,
	log *logrus.Logger,
	handler func(http.ResponseWriter, *http.Request, *LogData) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		logData := NewLogData(log)
		log.Infof("Handler.%v.Start", loggingName)

		endTimer := logData.AddTiming("duration")
		err := handler(w, req.WithContext(WithLogData(req.Context(), logData)), logData)
		endTimer()
		if err != nil {
			logData.Log().WithError(err).Errorf("Handler.%v.Error", loggingName)
			return
		}

		logData.Log().Infof("Handler.%v.Complete", loggingName)
	}
}

// Middleware logs every request passing through next. Handlers add fields
// through GetLogData on the request context; responses with a 5xx status are
// logged at error level.
func Middleware(loggingName string, log *logrus.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		logData := NewLogData(log)
		logData.AddData("method", req.Method)
		logData.AddData("path", req.URL.Path)
		log.WithField("path", req.URL.Path).Infof("Handler.%v.Start", loggingName)

		metrics := httpsnoop.CaptureMetrics(next, w, req.WithContext(WithLogData(req.Context(), logData)))

		logData.AddData("status", metrics.Code)
		logData.AddData("bytes", metrics.Written)
		logData.AddData("duration", metrics.Duration.Milliseconds())

		if metrics.Code >= http.StatusInternalServerError {
			logData.Log().Errorf("Handler.%v.Error", loggingName)
			return
		}
		logData.Log().Infof("Handler.%v.Complete", loggingName)
	})
}
