package session

import (
	"math"
	"strconv"
)

// Field alternates, in resolution order. The backend names the same field
// differently depending on the endpoint and nests identity data under
// "user", "data" or "data.user"; this table is the single place where that
// ambiguity lives.
var (
	idKeys       = []string{"id", "_id", "userId", "user_id"}
	nameKeys     = []string{"name", "fullName", "username", "full_name", "userName"}
	emailKeys    = []string{"email", "userEmail", "user_email"}
	roleKeys     = []string{"role", "userRole", "user_role"}
	approvedKeys = []string{"approved", "isApproved", "is_approved"}
	phoneKeys    = []string{"phone", "phoneNumber", "phone_number"}
	tokenKeys    = []string{"token", "accessToken", "access_token"}
)

// Normalize reconciles a raw server payload of unknown shape into a
// Session. It never fails: missing fields take their documented defaults
// (role "buyer", approved true, name "User", the rest empty). The result
// always carries all canonical fields; Token may still be empty and callers
// must check Authenticated before trusting the session.
func Normalize(raw map[string]any) Session {
	merged := make(map[string]any, len(raw))
	for k, v := range raw {
		merged[k] = v
	}

	// Flatten nested identity objects over the top level; later merges win.
	if user, ok := asObject(raw["user"]); ok {
		overlay(merged, user)
	}
	if data, ok := asObject(raw["data"]); ok {
		overlay(merged, data)
		if dataUser, ok := asObject(data["user"]); ok {
			overlay(merged, dataUser)
		}
	}

	s := Session{
		ID:       firstString(merged, idKeys...),
		Name:     firstString(merged, nameKeys...),
		Email:    firstString(merged, emailKeys...),
		Role:     firstString(merged, roleKeys...),
		Approved: resolveApproved(merged),
		Phone:    firstString(merged, phoneKeys...),
		Token:    resolveToken(raw, merged),
	}

	if s.Name == "" {
		s.Name = "User"
	}
	if s.Role == "" {
		s.Role = "buyer"
	}
	return s
}

// resolveToken searches the documented token locations in priority order:
// top-level alternates, then data.token, then user.token, then whatever the
// flattening merged onto the object.
func resolveToken(raw, merged map[string]any) string {
	if token := firstString(raw, tokenKeys...); token != "" {
		return token
	}
	if data, ok := asObject(raw["data"]); ok {
		if token := firstString(data, "token"); token != "" {
			return token
		}
	}
	if user, ok := asObject(raw["user"]); ok {
		if token := firstString(user, "token"); token != "" {
			return token
		}
	}
	return firstString(merged, tokenKeys...)
}

// resolveApproved defaults to true only when the field is absent; an
// explicit false passes through.
func resolveApproved(m map[string]any) bool {
	for _, key := range approvedKeys {
		v, ok := m[key]
		if !ok || v == nil {
			continue
		}
		switch value := v.(type) {
		case bool:
			return value
		case string:
			return value != "false"
		}
	}
	return true
}

func overlay(dst, src map[string]any) {
	for k, v := range src {
		dst[k] = v
	}
}

func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// firstString returns the first present key rendered as a string. JSON
// numbers are formatted without an exponent so numeric ids round-trip
// (7 -> "7").
func firstString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		v, ok := m[key]
		if !ok || v == nil {
			continue
		}
		if s := stringify(v); s != "" {
			return s
		}
	}
	return ""
}

func stringify(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		if value == math.Trunc(value) && math.Abs(value) < 1e15 {
			return strconv.FormatInt(int64(value), 10)
		}
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	default:
		return ""
	}
}
