package domain

import "strings"

// AnonymousUser is the identity attributed to actions when no display name is set.
const AnonymousUser = "Anonymous"

// ResolveActor returns the display name actions are attributed to.
func ResolveActor(currentUser string) string {
	if name := strings.TrimSpace(currentUser); name != "" {
		return name
	}
	return AnonymousUser
}
