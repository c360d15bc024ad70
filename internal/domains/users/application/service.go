package application

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/users/application/types"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/users/ports"
	"github.com/Apurer/go-gin-delivery-api/internal/platform/transaction"
	"github.com/Apurer/go-gin-delivery-api/internal/shared/identity"
)

var _ ports.Service = (*Service)(nil)

// Service exposes signup, login, token authentication and account management.
type Service struct {
	repo       ports.Repository
	sessions   ports.SessionStore
	tokens     ports.TokenIssuer
	hasher     ports.PasswordHasher
	tx         transaction.Manager
	ownerToken string
}

type Option func(*Service)

// WithOwnerToken sets the secret that owner signups must present. Without it owner
// signup is disabled.
func WithOwnerToken(token string) Option {
	return func(s *Service) { s.ownerToken = token }
}

// WithTransactions runs withdrawal inside tx so the account and its sessions go together.
func WithTransactions(tx transaction.Manager) Option {
	return func(s *Service) {
		if tx != nil {
			s.tx = tx
		}
	}
}

func NewService(repo ports.Repository, sessions ports.SessionStore, tokens ports.TokenIssuer, hasher ports.PasswordHasher, opts ...Option) *Service {
	if sessions == nil {
		sessions = ports.NoopSessionStore
	}
	s := &Service{repo: repo, sessions: sessions, tokens: tokens, hasher: hasher, tx: transaction.NewLocalManager()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Signup(ctx context.Context, input types.SignupInput) (*domain.User, error) {
	email, err := domain.NormalizeEmail(input.Email)
	if err != nil {
		return nil, mapError(err)
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, mapError(err)
	}
	role := identity.RoleUser
	if input.Owner {
		if !s.ownerTokenMatches(input.OwnerToken) {
			return nil, domain.ErrOwnerTokenMismatch
		}
		role = identity.RoleOwner
	}
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	user, err := domain.NewUser(email, hash, role)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Create(ctx, user)
}

// Login exchanges credentials for an access token. Unknown emails and wrong passwords
// fail the same way.
func (s *Service) Login(ctx context.Context, input types.LoginInput) (*types.Session, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	issued, err := s.tokens.Issue(user.Principal())
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, user.ID, issued.ID, issued.ExpiresAt); err != nil {
		return nil, err
	}
	return &types.Session{User: user, Token: issued.Value, ExpiresAt: issued.ExpiresAt}, nil
}

// Logout ends every session of the user.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return nil
	}
	return s.sessions.Delete(ctx, userID)
}

// Authenticate accepts a token only while its session is still recorded.
func (s *Service) Authenticate(ctx context.Context, token string) (identity.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return identity.Principal{}, domain.ErrInvalidToken
	}
	verified, err := s.tokens.Verify(token)
	if err != nil {
		return identity.Principal{}, domain.ErrInvalidToken
	}
	active, err := s.sessions.Active(ctx, verified.ID)
	if err != nil {
		return identity.Principal{}, err
	}
	if !active {
		return identity.Principal{}, domain.ErrSessionEnded
	}
	return verified.Principal, nil
}

// ChangePassword checks the current password before storing the new one. Existing
// sessions stay valid.
func (s *Service) ChangePassword(ctx context.Context, input types.ChangePasswordInput) error {
	user, err := s.accountOf(ctx, input.Requester, input.UserID)
	if err != nil {
		return err
	}
	if err := s.hasher.Compare(user.PasswordHash, input.CurrentPassword); err != nil {
		return domain.ErrCurrentPassword
	}
	if err := domain.ValidatePassword(input.NewPassword); err != nil {
		return mapError(err)
	}
	hash, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, user.ID, hash)
}

// Withdraw deletes the account and every session of it once the password matches.
func (s *Service) Withdraw(ctx context.Context, input types.WithdrawInput) error {
	user, err := s.accountOf(ctx, input.Requester, input.UserID)
	if err != nil {
		return err
	}
	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		return domain.ErrPasswordMismatch
	}
	return s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.sessions.Delete(ctx, user.ID); err != nil {
			return err
		}
		return s.repo.Delete(ctx, user.ID)
	})
}

func (s *Service) accountOf(ctx context.Context, requester identity.Principal, userID int64) (*domain.User, error) {
	if requester.ID <= 0 || requester.ID != userID {
		return nil, domain.ErrNotAccountHolder
	}
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) ownerTokenMatches(presented string) bool {
	if s.ownerToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.ownerToken), []byte(presented)) == 1
}
