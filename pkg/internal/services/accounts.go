package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/voxpop-app/voxpop/pkg/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNameTaken       = errors.New("that name is already taken")
	ErrBadCredentials  = errors.New("invalid name or password")
	ErrUnauthenticated = errors.New("you need to be logged in to do this")
)

const tokenLifetime = 7 * 24 * time.Hour

// AccountStore is the identity-side persistence collaborator, injected for
// the same reason as PollStore.
type AccountStore interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccount(ctx context.Context, id uint) (models.Account, error)
	GetAccountByName(ctx context.Context, name string) (models.Account, error)
}

// AuthService owns registration, login and bearer token resolution. The rest
// of the system treats it as opaque: handlers only ever see the resolved
// account, never token internals.
type AuthService struct {
	store  AccountStore
	secret []byte
}

func NewAuthService(store AccountStore, secret string) *AuthService {
	return &AuthService{store: store, secret: []byte(secret)}
}

func (s *AuthService) Register(ctx context.Context, name, password string) (models.Account, error) {
	var account models.Account
	if _, err := s.store.GetAccountByName(ctx, name); err == nil {
		return account, ErrNameTaken
	} else if !errors.Is(err, models.ErrAccountNotFound) {
		return account, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return account, fmt.Errorf("unable to hash password: %v", err)
	}

	account = models.Account{
		Name:     name,
		Password: string(hash),
	}
	if err := s.store.CreateAccount(ctx, &account); err != nil {
		return account, err
	}

	return account, nil
}

func (s *AuthService) Login(ctx context.Context, name, password string) (string, error) {
	account, err := s.store.GetAccountByName(ctx, name)
	if err != nil {
		if errors.Is(err, models.ErrAccountNotFound) {
			return "", ErrBadCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return "", ErrBadCredentials
	}

	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(account.ID), 10),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
	})

	out, err := tk.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("unable to sign token: %v", err)
	}

	return out, nil
}

// Authenticate resolves a bearer token into the account that owns it. Every
// failure collapses into ErrUnauthenticated so callers cannot tell a forged
// token apart from an expired one.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.Account, error) {
	var account models.Account

	tk, err := jwt.Parse(token, func(tk *jwt.Token) (any, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tk.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !tk.Valid {
		return account, ErrUnauthenticated
	}

	subject, err := tk.Claims.GetSubject()
	if err != nil {
		return account, ErrUnauthenticated
	}
	id, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return account, ErrUnauthenticated
	}

	account, err = s.store.GetAccount(ctx, uint(id))
	if err != nil {
		return account, ErrUnauthenticated
	}

	return account, nil
}
