package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"
)

type tokenIssuer interface {
	GenerateToken(userID int64, role int) (string, error)
}

// Service handles credential checks and token issuance.
type Service struct {
	users *Repository
	jwt   tokenIssuer
}

func NewService(users *Repository, jwt tokenIssuer) *Service {
	return &Service{users: users, jwt: jwt}
}

type LoginResult struct {
	User  *User
	Token string
}

func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.UserRole)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, Token: token}, nil
}

// Register creates a company account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		UserRole:     RoleCompany,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
