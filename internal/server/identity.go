package server

import (
	"context"
	"net/http"
)

// UserInfo is the request identity resolved by the identity middleware.
// Authentication itself is delegated: on a tailnet the connection already
// proves who the caller is, and local development falls back to a fixed
// dev identity.
type UserInfo struct {
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

type contextKey int

const userInfoKey contextKey = iota

var devUser = UserInfo{Login: "local", DisplayName: "Local Dev User"}

// identity resolves the caller via the tsnet local client when available
// and stores the result in the request context. Identity rows are upserted
// so workouts can reference their owner.
func (s *Server) identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := devUser

		if s.ts != nil {
			who, err := s.ts.WhoIs(r.Context(), r.RemoteAddr)
			if err == nil && who.UserProfile != nil {
				info = UserInfo{
					Login:       who.UserProfile.LoginName,
					DisplayName: who.UserProfile.DisplayName,
					AvatarURL:   who.UserProfile.ProfilePicURL,
				}
			} else if err != nil {
				s.log.Warn("identity lookup failed", "remote", r.RemoteAddr, "error", err)
			}
		}

		if s.db != nil {
			if _, err := s.db.GetOrCreateUser(r.Context(), info.Login, info.DisplayName, info.AvatarURL); err != nil {
				s.log.Warn("user upsert failed", "login", info.Login, "error", err)
			}
		}

		ctx := context.WithValue(r.Context(), userInfoKey, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userInfoFromContext returns the identity stored by the middleware, or the
// dev identity as a safe fallback.
func userInfoFromContext(r *http.Request) UserInfo {
	if info, ok := r.Context().Value(userInfoKey).(UserInfo); ok {
		return info
	}
	return devUser
}
