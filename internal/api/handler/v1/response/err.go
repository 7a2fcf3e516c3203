package response

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"status"`

	ErrorMsg   string `json:"error"`
	RetryAfter int    `json:"retry_after,omitempty"`
}

func (e *Err) Error() string {
	return e.ErrorMsg
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("path", ctx.FullPath()),
			zap.Error(e.Err),
		)
	}
	if e.RetryAfter > 0 {
		ctx.Header("Retry-After", strconv.Itoa(e.RetryAfter))
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		ErrorMsg:       err.Error(),
	}
}

func ErrInvalidID(param string, err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		ErrorMsg:       fmt.Sprintf("%s must be a valid uuid", param),
	}
}

func ErrNotFound(entity, field string, value any) *Err {
	return &Err{
		HTTPStatusCode: http.StatusNotFound,
		ErrorMsg:       fmt.Sprintf("%s with %s %v not found", entity, field, value),
	}
}

func ErrNoResult(msg string) *Err {
	return &Err{
		HTTPStatusCode: http.StatusNotFound,
		ErrorMsg:       msg,
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusConflict,
		ErrorMsg:       err.Error(),
	}
}

func ErrUnauthenticated(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusUnauthorized,
		ErrorMsg:       "authentication required",
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusUnauthorized,
		ErrorMsg:       "wrong email or password",
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusForbidden,
		ErrorMsg:       err.Error(),
	}
}

func ErrPayloadTooLarge(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusRequestEntityTooLarge,
		ErrorMsg:       err.Error(),
	}
}

func ErrUnsupportedMediaType(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusUnsupportedMediaType,
		ErrorMsg:       err.Error(),
	}
}

func ErrTooManyRequests(err error, wait time.Duration) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusTooManyRequests,
		ErrorMsg:       err.Error(),
		RetryAfter:     int(math.Ceil(wait.Seconds())),
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		ErrorMsg:       "internal server error",
	}
}
