package utils

import (
	"net/url"
	"strings"
)

const redacted = "redacted"

// RedactURL hides credentials carried in an RPC URL: userinfo, the key segment of
// provider paths such as /v3/<key> or /v2/<key>, and query values.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	if u.User != nil {
		u.User = url.User(redacted)
	}

	segments := strings.Split(u.Path, "/")
	for i := 0; i < len(segments)-1; i++ {
		if isVersionSegment(segments[i]) && segments[i+1] != "" {
			segments[i+1] = redacted
		}
	}
	u.Path = strings.Join(segments, "/")
	u.RawPath = ""

	if u.RawQuery != "" {
		q := u.Query()
		for k := range q {
			q.Set(k, redacted)
		}
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
