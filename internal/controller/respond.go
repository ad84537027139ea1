package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nexprep/nexprep/internal/apperror"
	"github.com/nexprep/nexprep/internal/dto"
	"github.com/rs/zerolog/log"
)

// RespondError writes the single error envelope used across the API. The
// status and user-facing message come from the error's kind; internal errors
// are logged with their cause but masked on the wire.
func RespondError(ctx *gin.Context, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Request failed")
	}
	ctx.JSON(apperror.HTTPStatus(err), dto.ErrorResponse{
		Error: apperror.Message(err),
		Type:  kind.String(),
	})
}

// UintParam parses a numeric path parameter; ok is false after an error
// response has already been written.
func UintParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		RespondError(ctx, apperror.Validation("invalid "+name+" parameter"))
		return 0, false
	}
	return uint(val), true
}

// UintQuery parses an optional numeric query parameter, returning 0 when it
// is absent.
func UintQuery(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, true
	}
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		RespondError(ctx, apperror.Validation("invalid "+name+" parameter"))
		return 0, false
	}
	return uint(val), true
}

// UserIdentity resolves the calling user from the X-User-ID header, falling
// back to the user_id query parameter. Authentication proper sits in front
// of this service; here the ID only scopes attempt ownership.
func UserIdentity(ctx *gin.Context) (uint, bool) {
	raw := ctx.GetHeader("X-User-ID")
	if raw == "" {
		raw = ctx.Query("user_id")
	}
	if raw == "" {
		RespondError(ctx, apperror.Validation("missing user identity"))
		return 0, false
	}
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		RespondError(ctx, apperror.Validation("invalid user identity"))
		return 0, false
	}
	return uint(val), true
}
