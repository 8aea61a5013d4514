package frameapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/courtside/internal/usecase"
	"github.com/valyala/fasthttp"
)

const (
	apiVersion  = "2.0"
	errorDomain = "courtside"
)

type responseEnvelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func writeJSON(rc *fasthttp.RequestCtx, status int, payload any) {
	body, err := sonic.Marshal(payload)
	if err != nil {
		rc.Error(`{"apiVersion":"2.0","error":{"code":500,"status":"INTERNAL"}}`, http.StatusInternalServerError)
		rc.SetContentType("application/json")
		return
	}
	rc.SetStatusCode(status)
	rc.SetContentType("application/json")
	rc.SetBody(body)
}

func writeSuccess(rc *fasthttp.RequestCtx, data any) {
	writeJSON(rc, http.StatusOK, responseEnvelope{APIVersion: apiVersion, Data: data})
}

func writeError(ctx context.Context, rc *fasthttp.RequestCtx, err error) {
	ctx, span := startSpan(ctx, "frameapi.writeError")
	defer span.End()
	span.RecordError(err)

	mapped := mapError(err)
	writeJSON(rc, mapped.HTTPStatus, responseEnvelope{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:    mapped.HTTPStatus,
			Message: err.Error(),
			Status:  mapped.Status,
			Errors: []errorItem{
				{Domain: errorDomain, Reason: mapped.Reason, Message: err.Error()},
			},
		},
	})
}

func mapError(err error) mappedError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, usecase.ErrNotFound), errors.Is(err, usecase.ErrNoData):
		return mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"}
	case errors.Is(err, errMethodNotAllowed):
		return mappedError{HTTPStatus: http.StatusMethodNotAllowed, Reason: "methodNotAllowed", Status: "UNIMPLEMENTED"}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}
	}
}
