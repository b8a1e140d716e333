package handlers

import (
	"net/http"

	"stockcast/internal/common"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the structured failure body returned to callers. Only the
// kind and a human-readable message cross the boundary; internals stay inside.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

var kindToStatus = map[common.ErrorKind]int{
	common.KindNotFound:       http.StatusNotFound,
	common.KindDuplicateKey:   http.StatusConflict,
	common.KindInvalidInput:   http.StatusBadRequest,
	common.KindPartialFailure: http.StatusConflict,
	common.KindTimeout:        http.StatusGatewayTimeout,
	common.KindInternal:       http.StatusInternalServerError,
}

// sendError maps a store-level failure to its HTTP shape. The kind is never
// rewritten; cross-tenant lookups already arrive here as NotFound.
func sendError(c echo.Context, err error) error {
	kind := common.KindOf(err)
	status, ok := kindToStatus[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	var resp ErrorResponse
	resp.Error.Code = string(kind)
	if kind == common.KindInternal {
		resp.Error.Message = "operation could not be completed"
	} else {
		resp.Error.Message = err.Error()
	}
	return c.JSON(status, &resp)
}
