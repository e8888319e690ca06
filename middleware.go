package main

import (
	"regexp"
	"strconv"
	"strings"

	"photogallery/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const ctxClaimsKey = "claims"

var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// claimsFrom returns the identity attached by AuthenticateToken, if any.
func claimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(ctxClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// AuthenticateToken guards protected routes. On success the decoded claims are
// attached to the context for downstream handlers.
func (a *App) AuthenticateToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortErr(c, errNoToken)
			return
		}
		claims, res := verifyToken(a.cfg.JWTSecret, token)
		switch res {
		case tokenExpired:
			abortErr(c, errTokenExpired)
			return
		case tokenInvalid:
			abortErr(c, errInvalidToken)
			return
		}
		c.Set(ctxClaimsKey, claims)
		c.Next()
	}
}

// VerifyRefreshToken reads a refresh token from the JSON body or the
// refreshToken cookie and verifies it against the refresh secret. It checks
// the token only; callers wanting revocation consult the session store
// themselves (the refresh and logout handlers do).
func (a *App) VerifyRefreshToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		// ShouldBindBodyWith caches the body so the handler can re-bind it.
		_ = c.ShouldBindBodyWith(&body, binding.JSON)
		token := body.RefreshToken
		if token == "" {
			if cookie, err := c.Cookie("refreshToken"); err == nil {
				token = cookie
			}
		}
		if token == "" {
			abortErr(c, errNoRefreshToken)
			return
		}
		claims, res := verifyToken(a.cfg.JWTRefreshSecret, token)
		if res != tokenValid {
			abortErr(c, errInvalidRefreshToken)
			return
		}
		c.Set(ctxClaimsKey, claims)
		c.Set("refreshToken", token)
		c.Next()
	}
}

// RequireAdmin must run after AuthenticateToken.
func (a *App) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			abortErr(c, errNotAuthenticated)
			return
		}
		if claims.Role != models.RoleAdmin {
			abortErr(c, errInsufficientPermissions)
			return
		}
		c.Next()
	}
}

// RequireOwner must run after AuthenticateToken. The resource owner is taken
// from the userId path parameter or, failing that, a userId body field; the
// check passes when it matches the authenticated id or the caller is admin.
func (a *App) RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			abortErr(c, errNotAuthenticated)
			return
		}
		var resourceUserID uint
		if p := c.Param("userId"); p != "" {
			if v, err := strconv.ParseUint(p, 10, 64); err == nil {
				resourceUserID = uint(v)
			}
		} else {
			var body struct {
				UserID uint `json:"userId"`
			}
			_ = c.ShouldBindBodyWith(&body, binding.JSON)
			resourceUserID = body.UserID
		}
		if claims.UserID != resourceUserID && claims.Role != models.RoleAdmin {
			abortErr(c, errNotOwner)
			return
		}
		c.Next()
	}
}

// ValidateAuthInput is a pure shape guard for login/register bodies.
func (a *App) ValidateAuthInput() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = c.ShouldBindBodyWith(&body, binding.JSON)
		if body.Email == "" || body.Password == "" {
			abortErr(c, errMissingCredentials)
			return
		}
		if !emailRE.MatchString(body.Email) {
			abortErr(c, errInvalidEmail)
			return
		}
		if len(body.Password) < 6 {
			abortErr(c, errWeakPassword)
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches an identity when a valid token is present but never
// rejects the request.
func (a *App) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, res := verifyToken(a.cfg.JWTSecret, token); res == tokenValid {
				c.Set(ctxClaimsKey, claims)
			}
		}
		c.Next()
	}
}
