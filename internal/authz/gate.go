// Package authz decides, per request, whether the caller may perform the
// requested operation. Reads are open to everyone; writes need a staff user.
package authz

import "net/http"

type Decision int

const (
	Allow Decision = iota
	// DenyUnauthenticated means the caller presented no usable credential.
	DenyUnauthenticated
	// DenyForbidden means the caller is authenticated but lacks the staff flag.
	DenyForbidden
)

func isReadMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// Decide is the staff-or-read-only rule as a plain decision table. It has no
// side effects and touches no store.
func Decide(method string, id Identity) Decision {
	if isReadMethod(method) {
		return Allow
	}
	if !id.Authenticated() {
		return DenyUnauthenticated
	}
	if !id.IsStaff {
		return DenyForbidden
	}
	return Allow
}
