package authz

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	t.Parallel()

	anonymous := Identity{}
	member := Identity{UserID: 1, Username: "guest"}
	staff := Identity{UserID: 2, Username: "admin", IsStaff: true}

	tests := []struct {
		name   string
		method string
		id     Identity
		want   Decision
	}{
		{name: "anonymous read", method: http.MethodGet, id: anonymous, want: Allow},
		{name: "anonymous head", method: http.MethodHead, id: anonymous, want: Allow},
		{name: "anonymous options", method: http.MethodOptions, id: anonymous, want: Allow},
		{name: "member read", method: http.MethodGet, id: member, want: Allow},
		{name: "staff read", method: http.MethodGet, id: staff, want: Allow},
		{name: "anonymous post", method: http.MethodPost, id: anonymous, want: DenyUnauthenticated},
		{name: "anonymous delete", method: http.MethodDelete, id: anonymous, want: DenyUnauthenticated},
		{name: "member post", method: http.MethodPost, id: member, want: DenyForbidden},
		{name: "member put", method: http.MethodPut, id: member, want: DenyForbidden},
		{name: "member patch", method: http.MethodPatch, id: member, want: DenyForbidden},
		{name: "member delete", method: http.MethodDelete, id: member, want: DenyForbidden},
		{name: "staff post", method: http.MethodPost, id: staff, want: Allow},
		{name: "staff put", method: http.MethodPut, id: staff, want: Allow},
		{name: "staff patch", method: http.MethodPatch, id: staff, want: Allow},
		{name: "staff delete", method: http.MethodDelete, id: staff, want: Allow},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Decide(tt.method, tt.id))
		})
	}
}

func TestBearerKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc123", bearerKey("Bearer abc123"))
	assert.Equal(t, "abc123", bearerKey("bearer abc123"))
	assert.Equal(t, "", bearerKey(""))
	assert.Equal(t, "", bearerKey("abc123"))
	assert.Equal(t, "", bearerKey("Token abc123"))
}

func TestIdentityContextRoundTrip(t *testing.T) {
	t.Parallel()

	id := Identity{UserID: 7, Username: "admin", IsStaff: true}
	ctx := IntoContext(t.Context(), id)
	assert.Equal(t, id, FromContext(ctx))
	assert.True(t, FromContext(ctx).Authenticated())

	assert.False(t, FromContext(t.Context()).Authenticated())
}
