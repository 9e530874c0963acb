package auth

import "strings"

// AllowList is the static set of emails permitted to sign in. Membership is
// case-insensitive; the empty list denies everyone.
type AllowList struct {
	emails map[string]struct{}
}

func NewAllowList(emails []string) AllowList {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			set[e] = struct{}{}
		}
	}
	return AllowList{emails: set}
}

func (a AllowList) Contains(email string) bool {
	_, ok := a.emails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

func (a AllowList) Len() int {
	return len(a.emails)
}
