package auth

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ukydev/fleet-console/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const (
	defaultSecret = "default-secret-key-change-in-production"
	defaultExpiry = 24 * time.Hour
)

// credential is a row of the static login table.
type credential struct {
	password string
	role     models.Role
	name     string
}

// The console has no user management. These accounts are placeholders.
var credentialTable = map[string]credential{
	"cabal":   {password: "cabal123", role: models.RoleAdmin, name: "Administrador Cabal"},
	"usuario": {password: "usuario123", role: models.RoleUser, name: "Usuario Regular"},
}

// Service handles authentication operations
type Service struct {
	jwtSecret []byte
	tokenExp  time.Duration
	users     map[string]models.User
	now       func() time.Time
}

// NewService creates a new authentication service. Passwords of the
// credential table are kept only as bcrypt hashes.
func NewService(secret string, exp time.Duration) (*Service, error) {
	if secret == "" {
		secret = defaultSecret
	}
	if exp <= 0 {
		exp = defaultExpiry
	}

	s := &Service{
		jwtSecret: []byte(secret),
		tokenExp:  exp,
		users:     make(map[string]models.User, len(credentialTable)),
		now:       time.Now,
	}
	for username, c := range credentialTable {
		hash, err := s.HashPassword(c.password)
		if err != nil {
			return nil, err
		}
		s.users[username] = models.User{
			Username:     username,
			PasswordHash: hash,
			Role:         c.role,
			Name:         c.name,
		}
	}
	return s, nil
}

// HashPassword hashes a password using bcrypt
func (s *Service) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword checks if a password matches a hash
func (s *Service) CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Users lists the accounts of the credential table, without hashes.
func (s *Service) Users() []models.User {
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		u.PasswordHash = ""
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users
}

// Authenticate checks a username and password against the credential
// table. The username is case-insensitive; surrounding spaces are ignored.
func (s *Service) Authenticate(username, password string) (*models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	password = strings.TrimSpace(password)

	user, ok := s.users[username]
	if !ok || !s.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Login authenticates and builds a new session descriptor carrying a
// signed token.
func (s *Service) Login(username, password string) (*models.Session, error) {
	user, err := s.Authenticate(username, password)
	if err != nil {
		return nil, err
	}
	sess := &models.Session{
		ID:         uuid.NewString(),
		Username:   user.Username,
		Role:       user.Role,
		Name:       user.Name,
		LoggedInAt: s.now().UTC(),
	}
	token, err := s.GenerateToken(sess)
	if err != nil {
		return nil, err
	}
	sess.Token = token
	return sess, nil
}

// GenerateToken generates a JWT token for a session
func (s *Service) GenerateToken(sess *models.Session) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"session_id": sess.ID,
		"username":   sess.Username,
		"role":       string(sess.Role),
		"exp":        now.Add(s.tokenExp).Unix(),
		"iat":        now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken validates a JWT token and returns the claims
func (s *Service) ValidateToken(tokenString string) (*models.Claims, error) {
	// Remove "Bearer " prefix if present
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sessionID, ok := claims["session_id"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	username, ok := claims["username"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	roleStr, ok := claims["role"].(string)
	if !ok || !models.IsValidRole(models.Role(roleStr)) {
		return nil, ErrInvalidToken
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &models.Claims{
		SessionID: sessionID,
		Username:  username,
		Role:      models.Role(roleStr),
		Exp:       int64(exp),
	}, nil
}

// ExtractTokenFromHeader extracts token from Authorization header
func (s *Service) ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrInvalidToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", ErrInvalidToken
	}

	return parts[1], nil
}
