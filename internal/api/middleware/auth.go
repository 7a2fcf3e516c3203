package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/asclub/club-api/internal/api/handler/v1/response"
	"github.com/asclub/club-api/internal/pkg/jwthelper"
)

const (
	ContextKeyUserID         = "userID"
	ContextKeyTokenID        = "tokenID"
	ContextKeyTokenExpiresAt = "tokenExpiresAt"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errRevokedToken = errors.New("token has been revoked")
)

type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Authenticator struct {
	key     []byte
	revoked RevocationChecker
}

func NewAuthenticator(signingKey string, revoked RevocationChecker) *Authenticator {
	return &Authenticator{
		key:     []byte(signingKey),
		revoked: revoked,
	}
}

// VerifyJWT rejects requests without a valid, unrevoked admin token and
// stores the caller's id and token id in the gin context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			response.RenderErr(ctx, response.ErrUnauthenticated(errMissingToken))
			return
		}

		claims, err := jwthelper.ParseToken(a.key, tokenString)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthenticated(err))
			return
		}

		if a.revoked != nil {
			revoked, err := a.revoked.IsRevoked(ctx.Request.Context(), claims.ID)
			if err != nil {
				err = fmt.Errorf("middleware.VerifyJWT -> a.revoked.IsRevoked -> %w", err)
				response.RenderErr(ctx, response.ErrInternalServerError(err))
				return
			}
			if revoked {
				response.RenderErr(ctx, response.ErrUnauthenticated(errRevokedToken))
				return
			}
		}

		ctx.Set(ContextKeyUserID, claims.UserID)
		ctx.Set(ContextKeyTokenID, claims.ID)
		ctx.Set(ContextKeyTokenExpiresAt, claims.ExpiresAt.Time)
		ctx.Next()
	}
}

func UserID(ctx *gin.Context) (uuid.UUID, bool) {
	v, ok := ctx.Get(ContextKeyUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func TokenID(ctx *gin.Context) (string, time.Time) {
	return ctx.GetString(ContextKeyTokenID), ctx.GetTime(ContextKeyTokenExpiresAt)
}
