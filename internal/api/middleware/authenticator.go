package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chahin-fh/laboissimlocal/internal/api/handler/v1/response"
	"github.com/chahin-fh/laboissimlocal/internal/pkg/jwthelper"
)

// CtxKeyUserID is where the authenticator stores the caller's user id.
const CtxKeyUserID = "userID"

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT rejects requests without a valid bearer token. The token is
// bound to the User-Agent it was issued for.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, ok := a.parse(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized("invalid or missing token"))
			return
		}

		ctx.Set(CtxKeyUserID, claims.UserID)
		ctx.Next()
	}
}

// OptionalJWT attaches the caller identity when a valid token is present
// but lets anonymous requests through. Public endpoints that enrich their
// payload for signed-in users mount this one.
func (a *Authenticator) OptionalJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if claims, ok := a.parse(ctx); ok {
			ctx.Set(CtxKeyUserID, claims.UserID)
		}

		ctx.Next()
	}
}

func (a *Authenticator) parse(ctx *gin.Context) (*jwthelper.UserClaims, bool) {
	header := ctx.GetHeader("Authorization")
	tokenString, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenString == "" {
		return nil, false
	}

	claims, err := jwthelper.ParseToken(a.signingKey, tokenString)
	if err != nil {
		return nil, false
	}

	if claims.UserAgent != ctx.GetHeader("User-Agent") {
		return nil, false
	}

	return claims, true
}
