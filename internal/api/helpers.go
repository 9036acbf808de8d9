package api

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/platefulapp/plateful-server/internal/auth"
	"github.com/platefulapp/plateful-server/internal/domain"
)

// authenticateRequest validates the Authorization header and returns the
// authenticated user.
func (s *Server) authenticateRequest(ctx context.Context, authHeader string) (*domain.User, *auth.AccessClaims, error) {
	if authHeader == "" {
		return nil, nil, huma.Error401Unauthorized("Missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, nil, huma.Error401Unauthorized("Invalid authorization header format")
	}

	user, claims, err := s.services.Auth.VerifyAccessToken(ctx, parts[1])
	if err != nil {
		return nil, nil, huma.Error401Unauthorized("Invalid or expired token", err)
	}

	return user, claims, nil
}

// authenticateHTTP is authenticateRequest for plain http.Handler routes.
func (s *Server) authenticateHTTP(r *http.Request) (*domain.User, error) {
	user, _, err := s.authenticateRequest(r.Context(), r.Header.Get("Authorization"))
	return user, err
}

// parseIDList parses a comma-separated ID list query parameter, e.g.
// "1,2,3". An empty string yields nil.
func parseIDList(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid ID list: " + raw)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// extractIP returns the client IP from proxy headers, falling back to the
// request's remote address.
func extractIP(xForwardedFor, xRealIP, remoteAddr string) string {
	if xForwardedFor != "" {
		if i := strings.IndexByte(xForwardedFor, ','); i >= 0 {
			return strings.TrimSpace(xForwardedFor[:i])
		}
		return strings.TrimSpace(xForwardedFor)
	}
	if xRealIP != "" {
		return xRealIP
	}
	// SplitHostPort keeps IPv6 addresses intact ("[::1]:1234" -> "::1").
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}
