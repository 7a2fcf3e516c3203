package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/asclub/club-api/internal/domain"
	"github.com/asclub/club-api/internal/pkg/jwthelper"
)

const (
	HeaderVoterToken  = "X-Voter-Token"
	ContextKeyVoterID = "voterID"
)

// IdentifyVoter resolves who is reacting: the subject of a valid voter token,
// else the client IP, else the unknown voter.
func IdentifyVoter(signingKey string) gin.HandlerFunc {
	key := []byte(signingKey)

	return func(ctx *gin.Context) {
		ctx.Set(ContextKeyVoterID, resolveVoter(ctx, key))
		ctx.Next()
	}
}

func resolveVoter(ctx *gin.Context, key []byte) string {
	if token := ctx.GetHeader(HeaderVoterToken); token != "" {
		if voterID, err := jwthelper.ParseVoterToken(key, token); err == nil {
			return "voter:" + voterID
		}
	}

	if ip := ctx.ClientIP(); ip != "" {
		return "ip:" + ip
	}

	return domain.UnknownVoter
}

func VoterID(ctx *gin.Context) string {
	if id := ctx.GetString(ContextKeyVoterID); id != "" {
		return id
	}
	return domain.UnknownVoter
}
