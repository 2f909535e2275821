package auth

import (
	"context"
	"time"

	apperrors "github.com/jrsteele09/uigen-server/internal/errors"
	"github.com/jrsteele09/uigen-server/sessions"
	"github.com/jrsteele09/uigen-server/users"
	"github.com/pkg/errors"
)

// Result is the outcome of a sign-in or sign-up action. Credential problems
// are reported here rather than as errors so the caller can render them.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func failed(msg string) Result {
	return Result{Success: false, Error: msg}
}

// Service authenticates users and establishes their session cookie.
type Service struct {
	users    users.UserRepo
	sessions *sessions.Manager
	nowTime  func() time.Time
}

type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

func NewService(userRepo users.UserRepo, sessionManager *sessions.Manager, options ...ServiceOption) (*Service, error) {
	if userRepo == nil {
		return nil, errors.New("[NewService] Users repo is required")
	}
	if sessionManager == nil {
		return nil, errors.New("[NewService] session manager is required")
	}

	s := &Service{
		users:    userRepo,
		sessions: sessionManager,
		nowTime:  time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// SignIn checks the credentials and creates a session on success.
func (s *Service) SignIn(ctx context.Context, cookies sessions.CookieStore, email, password string) (Result, error) {
	email = users.NormaliseEmail(email)
	if email == "" || password == "" {
		return failed(MsgCredentialsRequired), nil
	}

	user, err := s.users.GetByEmail(ctx, email)
	if apperrors.Is(err, apperrors.ErrUserNotFound) {
		return failed(MsgInvalidCredentials), nil
	}
	if err != nil {
		return Result{}, errors.Wrap(err, "[Service.SignIn] GetByEmail")
	}

	if !users.CheckPasswordHash(password, user.PasswordHash) {
		return failed(MsgInvalidCredentials), nil
	}

	if err := s.sessions.CreateSession(cookies, user.ID, user.Email); err != nil {
		return Result{}, errors.Wrap(err, "[Service.SignIn] CreateSession")
	}
	return Result{Success: true}, nil
}

// SignUp registers a new account and signs it in.
func (s *Service) SignUp(ctx context.Context, cookies sessions.CookieStore, email, password string) (Result, error) {
	email = users.NormaliseEmail(email)
	if email == "" || password == "" {
		return failed(MsgCredentialsRequired), nil
	}
	if err := users.ValidatePassword(password); err != nil {
		return failed(MsgPasswordTooShort), nil
	}

	hash, err := users.HashPassword(password)
	if err != nil {
		return Result{}, errors.Wrap(err, "[Service.SignUp] HashPassword")
	}

	user := &users.User{Email: email, PasswordHash: hash}
	err = s.users.Create(ctx, user)
	if apperrors.Is(err, apperrors.ErrEmailTaken) {
		return failed(MsgEmailRegistered), nil
	}
	if err != nil {
		return Result{}, errors.Wrap(err, "[Service.SignUp] Create")
	}

	if err := s.sessions.CreateSession(cookies, user.ID, user.Email); err != nil {
		return Result{}, errors.Wrap(err, "[Service.SignUp] CreateSession")
	}
	return Result{Success: true}, nil
}

// SignOut removes the session cookie.
func (s *Service) SignOut(cookies sessions.CookieStore) error {
	return s.sessions.DeleteSession(cookies)
}

// Session returns the current session payload, or nil when there is none.
func (s *Service) Session(cookies sessions.CookieStore) (*sessions.Payload, error) {
	payload, err := s.sessions.GetSession(cookies)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Session] GetSession")
	}
	if payload.Expired(s.nowTime()) {
		return nil, nil
	}
	return payload, nil
}

// CurrentUser resolves the session to its user, or nil when signed out or
// when the account no longer exists.
func (s *Service) CurrentUser(ctx context.Context, cookies sessions.CookieStore) (*users.User, error) {
	payload, err := s.Session(cookies)
	if err != nil || payload == nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, payload.UserID)
	if apperrors.Is(err, apperrors.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[Service.CurrentUser] GetByID")
	}
	return user, nil
}
