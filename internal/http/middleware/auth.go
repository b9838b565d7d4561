package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"applyapi/internal/apperr"
	"applyapi/internal/model"
)

// ActorLocalKey is the key under which the authenticated model.Actor is stored in Fiber locals.
const ActorLocalKey = "actor"

// Claims is the payload of the bearer tokens issued by the identity subsystem.
type Claims struct {
	UserID string `json:"_id"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Auth verifies HS256 bearer tokens and exposes the caller as a model.Actor.
type Auth struct {
	secret []byte
	issuer string
}

// NewAuth builds the middleware. An empty issuer disables the iss check.
func NewAuth(secret, issuer string) (*Auth, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &Auth{secret: []byte(secret), issuer: issuer}, nil
}

// Handler rejects requests without a valid token with UNAUTHORIZED.
func (a *Auth) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return unauthorized("missing authorization header")
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return unauthorized("invalid authorization header format")
		}

		claims, err := a.parse(strings.TrimSpace(parts[1]))
		if err != nil {
			return unauthorized("invalid or expired token")
		}
		if claims.UserID == "" {
			return unauthorized("token has no subject")
		}

		c.Locals(ActorLocalKey, model.Actor{
			ID:    claims.UserID,
			Role:  model.Role(claims.Role),
			Email: claims.Email,
		})
		return c.Next()
	}
}

func (a *Auth) parse(token string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// ActorFromCtx returns the actor stored by Auth, if any.
func ActorFromCtx(c *fiber.Ctx) (model.Actor, bool) {
	actor, ok := c.Locals(ActorLocalKey).(model.Actor)
	return actor, ok
}

func unauthorized(msg string) error {
	return apperr.New(apperr.KindUnauthorized, msg, nil)
}
