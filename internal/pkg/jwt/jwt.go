package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess = "access"
	TokenTypeSSE    = "sse"
)

type Service interface {
	GenerateAccessToken(principal user.Principal) (token string, expiresAt int64, err error)
	GenerateSSEToken(principal user.Principal) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (user.Principal, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime time.Duration
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime time.Duration) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(principal user.Principal) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenExpirationTime).Unix()

	claims := principalClaims(principal)
	claims["type"] = TokenTypeAccess
	claims["exp"] = expiresAt

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// GenerateSSEToken generates a short-lived token for SSE connections
func (j *JWTService) GenerateSSEToken(principal user.Principal) (token string, expiresIn int, err error) {
	// SSE tokens are short-lived (5 minutes)
	expiresIn = 300
	expiresAt := time.Now().Add(5 * time.Minute).Unix()

	claims := principalClaims(principal)
	claims["type"] = TokenTypeSSE
	claims["exp"] = expiresAt

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresIn, nil
}

// ValidateSSEToken validates an SSE token and returns the principal it carries
func (j *JWTService) ValidateSSEToken(tokenString string) (user.Principal, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return user.Principal{}, err
	}

	claims, err := token.AsMap(context.Background())
	if err != nil {
		return user.Principal{}, err
	}

	if tokenType, _ := claims["type"].(string); tokenType != TokenTypeSSE {
		return user.Principal{}, jwt.ErrInvalidJWT()
	}

	return PrincipalFromClaims(claims)
}

func principalClaims(p user.Principal) map[string]interface{} {
	return map[string]interface{}{
		"user_id":       p.UserID,
		"employee_id":   p.EmployeeID,
		"employee_code": p.EmployeeCode,
		"role":          string(p.Role),
	}
}

// PrincipalFromClaims rebuilds a principal from decoded token claims.
func PrincipalFromClaims(claims map[string]interface{}) (user.Principal, error) {
	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || !user.Role(role).IsValid() {
		return user.Principal{}, errors.Join(user.ErrInvalidToken, jwt.ErrInvalidJWT())
	}

	employeeID, _ := claims["employee_id"].(string)
	employeeCode, _ := claims["employee_code"].(string)

	return user.Principal{
		UserID:       userID,
		EmployeeID:   employeeID,
		EmployeeCode: employeeCode,
		Role:         user.Role(role),
	}, nil
}
