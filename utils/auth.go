package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go-storefront/errs"
	"go-storefront/models"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenType  = "access"
	refreshTokenType = "refresh"
)

// AccessClaims is what the access token carries about the signed-in user
type AccessClaims struct {
	ID              string      `json:"id"`
	Email           string      `json:"email"`
	Name            string      `json:"name"`
	Avatar          string      `json:"avatar,omitempty"`
	Role            models.Role `json:"role"`
	SessionID       string      `json:"sessionId"`
	IsEmailVerified bool        `json:"isEmailVerified"`
	Type            string      `json:"typ"`
	jwt.StandardClaims
}

// RefreshClaims only names the session it renews
type RefreshClaims struct {
	SessionID string `json:"sessionId"`
	Type      string `json:"typ"`
	jwt.StandardClaims
}

// TokenManager signs and parses the HS256 tokens used for auth cookies
type TokenManager struct {
	secret        []byte
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

func NewTokenManager(secret string, accessExpiry, refreshExpiry time.Duration) *TokenManager {
	return &TokenManager{
		secret:        []byte(secret),
		AccessExpiry:  accessExpiry,
		RefreshExpiry: refreshExpiry,
	}
}

// GenerateAccessToken generates a JWT token for a user bound to a session
func (tm *TokenManager) GenerateAccessToken(user models.User, sessionID string) (string, error) {
	now := time.Now()
	claims := &AccessClaims{
		ID:              user.ID.Hex(),
		Email:           user.Email,
		Name:            user.Name,
		Avatar:          user.Avatar,
		Role:            user.Role,
		SessionID:       sessionID,
		IsEmailVerified: user.IsEmailVerified,
		Type:            accessTokenType,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(tm.AccessExpiry).Unix(),
		},
	}
	return tm.sign(claims)
}

func (tm *TokenManager) GenerateRefreshToken(sessionID string) (string, error) {
	now := time.Now()
	claims := &RefreshClaims{
		SessionID: sessionID,
		Type:      refreshTokenType,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(tm.RefreshExpiry).Unix(),
		},
	}
	return tm.sign(claims)
}

func (tm *TokenManager) ParseAccessToken(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := tm.parse(tokenStr, claims); err != nil {
		return nil, err
	}
	if claims.Type != accessTokenType || claims.ID == "" {
		return nil, errs.ErrInvalidToken
	}
	return claims, nil
}

func (tm *TokenManager) ParseRefreshToken(tokenStr string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := tm.parse(tokenStr, claims); err != nil {
		return nil, err
	}
	if claims.Type != refreshTokenType || claims.SessionID == "" {
		return nil, errs.ErrInvalidToken
	}
	return claims, nil
}

func (tm *TokenManager) sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return tokenString, nil
}

func (tm *TokenManager) parse(tokenStr string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return tm.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return errs.ErrTokenExpired
		}
		return errs.ErrInvalidToken
	}
	if !token.Valid {
		return errs.ErrInvalidToken
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hashed), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateVerificationCode returns an 8 digit, zero padded numeric code
func GenerateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(100_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%08d", n.Int64()), nil
}

// GenerateRandomToken returns n random bytes hex encoded
func GenerateRandomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
