// Package authz holds the pure admin-registration gate: only staff email
// domains may create back-office accounts.
package authz

import "strings"

// allowedDomains is the compiled-in allow-list. Matching is exact: a
// subdomain of an entry does not qualify.
var allowedDomains = []string{"alghahim.co.ke", "unedp.org"}

// IsAllowedDomain reports whether the email's domain is on the allow-list.
// Malformed addresses (zero or multiple '@') are rejected.
func IsAllowedDomain(email string) bool {
	if email == "" {
		return false
	}

	parts := strings.Split(strings.ToLower(strings.TrimSpace(email)), "@")
	if len(parts) != 2 {
		return false
	}

	domain := parts[1]
	for _, d := range allowedDomains {
		if domain == d {
			return true
		}
	}
	return false
}

// GenericDomainError is the rejection message shown to users. It must never
// enumerate the allow-list.
func GenericDomainError() string {
	return "Email not recognized in system. Please use your work email address."
}
