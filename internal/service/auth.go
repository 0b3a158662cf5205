package service

import (
	"context"
	"errors"
	"time"

	"github.com/Egor213/RBACPanel/internal/activitylog"
	"github.com/Egor213/RBACPanel/internal/client/rbacapi"
	"github.com/Egor213/RBACPanel/internal/domain"
	"github.com/Egor213/RBACPanel/internal/metrics"
	"github.com/Egor213/RBACPanel/internal/session"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultPermissionsTTL = 300 * time.Second
	DefaultTokenTTL       = 60 * time.Second
)

type AuthAPI interface {
	Login(ctx context.Context, username, password string) (domain.TokenResponse, error)
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
	TestToken(ctx context.Context, token string) error
}

type AuthConfig struct {
	PermissionsTTL time.Duration
	TokenTTL       time.Duration
}

// AuthService keeps a per-session token validation cache and a permission cache in front
// of the backend. Refresh failures fall back to cached data; only an explicit invalid-token
// answer from the backend ends the session.
type AuthService struct {
	api            AuthAPI
	permissionsTTL time.Duration
	tokenTTL       time.Duration
	counters       *metrics.Counters
	activity       *activitylog.Logger
	now            func() time.Time
}

type AuthOption func(*AuthService)

func WithAuthClock(now func() time.Time) AuthOption {
	return func(s *AuthService) {
		s.now = now
	}
}

func WithActivityLog(l *activitylog.Logger) AuthOption {
	return func(s *AuthService) {
		s.activity = l
	}
}

func WithAuthCounters(c *metrics.Counters) AuthOption {
	return func(s *AuthService) {
		s.counters = c
	}
}

func NewAuthService(api AuthAPI, cfg AuthConfig, opts ...AuthOption) *AuthService {
	s := &AuthService{
		api:            api,
		permissionsTTL: cfg.PermissionsTTL,
		tokenTTL:       cfg.TokenTTL,
		now:            time.Now,
	}
	if s.permissionsTTL <= 0 {
		s.permissionsTTL = DefaultPermissionsTTL
	}
	if s.tokenTTL <= 0 {
		s.tokenTTL = DefaultTokenTTL
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AuthService) inc(c metrics.Counter, labels ...string) {
	if s.counters != nil && c != nil {
		c.Inc(labels...)
	}
}

func (s *AuthService) cacheLookup(cache string, hit bool) {
	if s.counters == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	s.inc(s.counters.CacheLookups, cache, result)
}

// clearIfToken ends the session unless it was replaced by a newer login meanwhile.
func clearIfToken(sess *session.Session, token string) {
	sess.Update(func(st *domain.SessionState) bool {
		if st.Token != token {
			return false
		}
		*st = domain.SessionState{}
		return true
	})
}

func (s *AuthService) Login(ctx context.Context, sess *session.Session, username, password string) (*domain.User, error) {
	s.activity.UserAction(ctx, activitylog.UserAction{Action: ActionLoginAttempt, Username: username, Page: "Login", Success: true})

	resp, err := s.api.Login(ctx, username, password)
	if err == nil && resp.AccessToken == "" {
		err = ErrEmptyToken
	}

	var user *domain.User
	if err == nil {
		user = resp.User
		if user == nil {
			user, err = s.api.CurrentUser(ctx, resp.AccessToken)
		}
	}

	if err != nil {
		action := ActionLoginFailed
		if rbacapi.IsTransport(err) {
			action = ActionLoginError
		}
		s.activity.UserAction(ctx, activitylog.UserAction{
			Action:   action,
			Username: username,
			Page:     "Login",
			Details:  map[string]any{"error": rbacapi.Message(err)},
		})
		log.WithFields(log.Fields{"username": username, "error": err}).Warn("Login failed")
		return nil, err
	}

	now := s.now()
	sess.Set(domain.SessionState{
		Authenticated:       true,
		Token:               resp.AccessToken,
		User:                user,
		TokenValidatedAt:    now,
		PermissionsCachedAt: now,
	})

	s.activity.UserAction(ctx, activitylog.UserAction{Action: ActionLogin, Username: user.Username, Page: "Login", Success: true})
	log.WithFields(log.Fields{"username": user.Username, "session": sess.ID}).Info("User logged in")
	return user, nil
}

// Register creates the account without authenticating the session.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	user, err := s.api.Register(ctx, req)
	s.activity.UserAction(ctx, activitylog.UserAction{
		Action:   "register",
		Username: req.Username,
		Page:     "Register",
		Success:  err == nil,
	})
	if err != nil {
		log.WithFields(log.Fields{"username": req.Username, "error": err}).Warn("Registration failed")
		return nil, err
	}
	log.WithField("username", user.Username).Info("User registered")
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, sess *session.Session) {
	st := sess.State()
	sess.Clear()
	if st.User != nil {
		s.activity.UserAction(ctx, activitylog.UserAction{Action: ActionLogout, Username: st.User.Username, Success: true})
		log.WithFields(log.Fields{"username": st.User.Username, "session": sess.ID}).Info("User logged out")
	}
}

func (s *AuthService) IsAuthenticated(ctx context.Context, sess *session.Session) bool {
	st := sess.State()
	if !st.Authenticated || st.Token == "" {
		return false
	}

	if !st.TokenValidatedAt.IsZero() && s.now().Sub(st.TokenValidatedAt) <= s.tokenTTL {
		s.cacheLookup("token", true)
		return true
	}
	s.cacheLookup("token", false)

	err := s.api.TestToken(ctx, st.Token)
	switch {
	case err == nil:
		now := s.now()
		sess.Update(func(next *domain.SessionState) bool {
			if next.Token != st.Token {
				return false
			}
			next.TokenValidatedAt = now
			return true
		})
		return true
	case rbacapi.IsInvalidToken(err):
		log.WithField("session", sess.ID).Info("Backend rejected token, ending session")
		clearIfToken(sess, st.Token)
		return false
	default:
		log.WithFields(log.Fields{"session": sess.ID, "error": err}).Warn("Token validation unavailable")
		return false
	}
}

func (s *AuthService) CurrentUser(ctx context.Context, sess *session.Session) *domain.User {
	st := sess.State()
	if !st.Authenticated || st.Token == "" {
		return nil
	}
	if st.User != nil {
		return st.User
	}

	user, err := s.api.CurrentUser(ctx, st.Token)
	if err != nil {
		log.WithFields(log.Fields{"session": sess.ID, "error": err}).Warn("Authenticated session without profile, ending session")
		clearIfToken(sess, st.Token)
		return nil
	}

	now := s.now()
	sess.Update(func(next *domain.SessionState) bool {
		if next.Token != st.Token {
			return false
		}
		next.User = user
		next.PermissionsCachedAt = now
		return true
	})
	return user
}

func (s *AuthService) permissionsExpired(st domain.SessionState) bool {
	if st.PermissionsCachedAt.IsZero() {
		return true
	}
	return s.now().Sub(st.PermissionsCachedAt) > s.permissionsTTL
}

func (s *AuthService) IsPermissionsCacheExpired(sess *session.Session) bool {
	return s.permissionsExpired(sess.State())
}

// RefreshUserPermissions reloads the profile when forced or when the cache expired. On
// failure the cached profile stays in place and the error is returned.
func (s *AuthService) RefreshUserPermissions(ctx context.Context, sess *session.Session, force bool) error {
	st := sess.State()
	if !st.Authenticated || st.Token == "" {
		return ErrNotAuthenticated
	}
	if !force && !s.permissionsExpired(st) {
		s.cacheLookup("permissions", true)
		return nil
	}
	s.cacheLookup("permissions", false)

	user, err := s.api.CurrentUser(ctx, st.Token)
	if err != nil {
		if rbacapi.IsInvalidToken(err) {
			log.WithField("session", sess.ID).Info("Backend rejected token during refresh, ending session")
			clearIfToken(sess, st.Token)
			return err
		}
		log.WithFields(log.Fields{"session": sess.ID, "error": err}).Warn("Permission refresh failed, keeping cached profile")
		return err
	}

	now := s.now()
	sess.Update(func(next *domain.SessionState) bool {
		if next.Token != st.Token {
			return false
		}
		next.User = user
		next.PermissionsCachedAt = now
		return true
	})
	log.WithFields(log.Fields{"session": sess.ID, "username": user.Username}).Debug("Permissions refreshed")
	return nil
}

func (s *AuthService) recordCheck(ctx context.Context, user *domain.User, permission string, granted bool) {
	result := "denied"
	if granted {
		result = "granted"
	}
	if s.counters != nil {
		s.inc(s.counters.PermissionChecks, result)
	}

	check := activitylog.PermissionCheck{Permission: permission, Granted: granted}
	if user != nil {
		check.Username = user.Username
	}
	s.activity.PermissionCheck(ctx, check)
}

func (s *AuthService) HasPermission(ctx context.Context, sess *session.Session, permission string) bool {
	st := sess.State()
	if !st.Authenticated || st.Token == "" {
		log.WithField("permission", permission).Debug("Permission check without authentication")
		s.recordCheck(ctx, nil, permission, false)
		return false
	}

	user := st.User
	if user == nil {
		user = s.CurrentUser(ctx, sess)
		if user == nil {
			s.recordCheck(ctx, nil, permission, false)
			return false
		}
	}

	if user.IsSuperuser {
		s.recordCheck(ctx, user, permission, true)
		return true
	}

	if s.permissionsExpired(sess.State()) {
		// Stale data is used when the refresh fails.
		_ = s.RefreshUserPermissions(ctx, sess, false)
		if st = sess.State(); !st.Authenticated {
			s.recordCheck(ctx, user, permission, false)
			return false
		}
		if st.User != nil {
			user = st.User
		}
	}

	granted := user.HasPermission(permission)
	s.recordCheck(ctx, user, permission, granted)
	return granted
}

// HasPermissionCached answers from the cached profile only.
func (s *AuthService) HasPermissionCached(sess *session.Session, permission string) bool {
	st := sess.State()
	if !st.Authenticated || st.User == nil {
		return false
	}
	return st.User.IsSuperuser || st.User.HasPermission(permission)
}

func (s *AuthService) HasRole(ctx context.Context, sess *session.Session, role string) bool {
	return s.CurrentUser(ctx, sess).HasRole(role)
}

func (s *AuthService) UserRoles(ctx context.Context, sess *session.Session) []string {
	return s.CurrentUser(ctx, sess).RoleNames()
}

func (s *AuthService) UserPermissions(ctx context.Context, sess *session.Session, refresh bool) []string {
	if refresh {
		_ = s.RefreshUserPermissions(ctx, sess, true)
	}
	return s.CurrentUser(ctx, sess).PermissionNames()
}

func (s *AuthService) PermissionsCacheInfo(sess *session.Session) domain.PermissionsCacheInfo {
	st := sess.State()
	info := domain.PermissionsCacheInfo{
		IsExpired:  true,
		TTLSeconds: s.permissionsTTL.Seconds(),
	}
	if st.PermissionsCachedAt.IsZero() {
		return info
	}

	age := s.now().Sub(st.PermissionsCachedAt)
	info.Cached = true
	info.CacheAgeSeconds = age.Seconds()
	info.ExpiresInSeconds = max(0, (s.permissionsTTL - age).Seconds())
	info.IsExpired = age > s.permissionsTTL
	return info
}

// InvalidatePermissionsCache makes the next permission check reload the profile.
func (s *AuthService) InvalidatePermissionsCache(sess *session.Session) {
	sess.Update(func(st *domain.SessionState) bool {
		st.PermissionsCachedAt = time.Time{}
		return true
	})
}

// Authorize is the guard used by handlers: it verifies the session and then the permission.
func (s *AuthService) Authorize(ctx context.Context, sess *session.Session, permission string) error {
	if !s.IsAuthenticated(ctx, sess) {
		return ErrNotAuthenticated
	}
	if !s.HasPermission(ctx, sess, permission) {
		return ErrPermissionDenied
	}
	return nil
}

// IsAuthError reports errors that mean the caller must log in again.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNotAuthenticated) || rbacapi.IsInvalidToken(err)
}
