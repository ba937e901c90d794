package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	pkgcrypto "github.com/anilvs/casetrack/internal/crypto"
	"github.com/anilvs/casetrack/internal/errs"
	"github.com/anilvs/casetrack/internal/limiter"
	"github.com/anilvs/casetrack/internal/model"
	"github.com/anilvs/casetrack/internal/repository"
)

// RegisterUser is the input for account registration.
type RegisterUser struct {
	Name        string
	Email       string
	Phone       string
	District    string
	Password    string
	Role        model.Role
	BadgeNumber string // officers only
	Department  string // officers only
}

// Tokens carries an issued access token.
type Tokens struct {
	AccessToken string
	ExpiresAt   time.Time
}

// AuthService defines registration and login.
type AuthService interface {
	// Register creates a new account. Citizens must not carry a badge;
	// officers must.
	Register(ctx context.Context, in RegisterUser) (*model.User, error)
	// LoginWithIP applies rate-limiting and authenticates the user.
	LoginWithIP(ctx context.Context, email, password, ip string) (Tokens, model.User, error)
}

type AuthServiceImpl struct {
	users     repository.UserRepository
	signKey   []byte
	accessTTL time.Duration
	lim       limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, signKey []byte, accessTTL time.Duration, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, signKey: signKey, accessTTL: accessTTL, lim: lim}
}

// Register creates a new user record with a per-user salt.
func (s *AuthServiceImpl) Register(ctx context.Context, in RegisterUser) (*model.User, error) {
	switch {
	case in.Name == "":
		return nil, errs.Validation("name", "required")
	case in.Email == "" || !strings.Contains(in.Email, "@"):
		return nil, errs.Validation("email", "required and must be an address")
	case in.Password == "":
		return nil, errs.Validation("password", "required")
	}
	if in.Role == "" {
		in.Role = model.RoleCitizen
	}
	// badge number present iff the account is an officer
	switch in.Role {
	case model.RoleOfficer:
		if in.BadgeNumber == "" {
			return nil, errs.Validation("badge_number", "required for officers")
		}
	case model.RoleCitizen:
		if in.BadgeNumber != "" {
			return nil, errs.Validation("badge_number", "must be empty for citizens")
		}
	default:
		return nil, errs.Validation("role", "unknown role")
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	salt, err := pkgcrypto.NewSalt()
	if err != nil {
		return nil, err
	}
	u := &model.User{
		ID:          id,
		Name:        in.Name,
		Role:        in.Role,
		Email:       in.Email,
		Phone:       in.Phone,
		District:    in.District,
		BadgeNumber: in.BadgeNumber,
		Department:  in.Department,
		PwdHash:     pkgcrypto.HashPassword([]byte(in.Password), salt),
		PwdSalt:     salt,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// LoginWithIP authenticates with rate limiting by (email, ip).
func (s *AuthServiceImpl) LoginWithIP(ctx context.Context, email, password, ip string) (Tokens, model.User, error) {
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return Tokens{}, model.User{}, err
	}
	if !allowed {
		return Tokens{}, model.User{}, errs.ErrRateLimited
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil || !pkgcrypto.VerifyPassword([]byte(password), u.PwdSalt, u.PwdHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return Tokens{}, model.User{}, errs.ErrRateLimited
		}
		// a lookup failure is masked the same as a wrong password
		return Tokens{}, model.User{}, errs.ErrUnauthorized
	}

	_ = s.lim.Success(ctx, email, ipHash)

	access, exp, err := s.issueAccessToken(u)
	if err != nil {
		return Tokens{}, model.User{}, err
	}
	return Tokens{AccessToken: access, ExpiresAt: exp}, *u, nil
}

// issueAccessToken creates a signed HS256 JWT carrying the user id and role.
func (s *AuthServiceImpl) issueAccessToken(u *model.User) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.accessTTL)
	claims := jwt.MapClaims{
		"sub":  u.ID.String(),
		"role": string(u.Role),
		"iat":  jwt.NewNumericDate(now),
		"exp":  jwt.NewNumericDate(exp),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.signKey)
	return signed, exp, err
}

// ParseAccessToken validates a token and returns the user id and role.
func ParseAccessToken(token string, signKey []byte) (uuid.UUID, model.Role, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return signKey, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, "", errs.ErrUnauthorized
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "", errs.ErrUnauthorized
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.FromString(sub)
	if err != nil {
		return uuid.Nil, "", errs.ErrUnauthorized
	}
	role, _ := claims["role"].(string)
	return id, model.Role(role), nil
}
