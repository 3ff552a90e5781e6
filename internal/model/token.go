package model

import "strings"

// demoTokenPrefix is a fixed wire contract with the frontend. The token is a
// placeholder scheme carrying the bare email; production use requires replacing
// it with signed or opaque session tokens.
const demoTokenPrefix = "demo::"

// DemoToken is the bearer credential issued by login and signup.
type DemoToken struct {
	Email string
}

func (t DemoToken) String() string {
	return demoTokenPrefix + t.Email
}

// ParseDemoToken extracts the token from an Authorization header value of the
// form "Bearer demo::<email>". The zero token and false are returned for
// anything else.
func ParseDemoToken(authHeader string) (DemoToken, bool) {
	raw, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok {
		return DemoToken{}, false
	}
	email, ok := strings.CutPrefix(raw, demoTokenPrefix)
	if !ok || email == "" {
		return DemoToken{}, false
	}
	return DemoToken{Email: email}, true
}
