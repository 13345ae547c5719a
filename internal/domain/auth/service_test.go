package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

type stubIssuer struct{}

func (stubIssuer) GenerateToken(userID int64, role int) (string, error) {
	return fmt.Sprintf("token-%d-%d", userID, role), nil
}

func setupAuth(t *testing.T) *Service {
	t.Helper()

	dsn := fmt.Sprintf("file:auth_svc_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&User{}); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	return NewService(NewRepository(db), stubIssuer{})
}

func TestRegisterAndLogin(t *testing.T) {
	svc := setupAuth(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Acme", "acme@example.com", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, RoleCompany, user.UserRole)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	result, err := svc.Login(ctx, "acme@example.com", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)
	assert.NotEmpty(t, result.Token)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := setupAuth(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Acme", "acme@example.com", "secret123")
	assert.NoError(t, err)

	_, err = svc.Login(ctx, "acme@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := setupAuth(t)

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := setupAuth(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Acme", "acme@example.com", "secret123")
	assert.NoError(t, err)

	_, err = svc.Register(ctx, "Other", "acme@example.com", "secret456")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLoginEmailIsCaseInsensitive(t *testing.T) {
	svc := setupAuth(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Acme", "acme@example.com", "secret123")
	assert.NoError(t, err)

	result, err := svc.Login(ctx, "ACME@Example.com", "secret123")
	assert.NoError(t, err)
	assert.NotNil(t, result)
}
