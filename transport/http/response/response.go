package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/logger"
)

// Data, Error and Message are the three envelopes every JSON answer uses. They are also
// referenced by the swagger annotations.
type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, constant.ContentTypeJSON, Message{Message: &message})
}

func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, constant.ContentTypeJSON, Data[any]{Data: &payload})
}

// WithError answers with the status and message carried by a failure in err's chain. Anything
// else is logged and answered with a plain 500 so store and driver text never reaches the client.
func WithError(writer http.ResponseWriter, err error) {
	var fail *failure.Failure
	if errors.As(err, &fail) {
		message := fail.Message
		write(writer, fail.Code, constant.ContentTypeJSON, Error{Error: &message})

		return
	}

	logger.ErrorWithStack(err)

	message := http.StatusText(http.StatusInternalServerError)
	write(writer, http.StatusInternalServerError, constant.ContentTypeJSON, Error{Error: &message})
}

// WithFile sends content as a download named filename.
func WithFile(writer http.ResponseWriter, contentType, filename string, content []byte) {
	header := writer.Header()
	header.Set(constant.RequestHeaderContentType, contentType)
	header.Set(constant.RequestHeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	header.Set(constant.RequestHeaderContentLength, strconv.Itoa(len(content)))
	writer.WriteHeader(http.StatusOK)

	if _, err := writer.Write(content); err != nil {
		logger.ErrorWithStack(err)
	}
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func write(writer http.ResponseWriter, code int, contentType string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, contentType)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
