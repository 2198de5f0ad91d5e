package social

import (
	"time"

	"github.com/nidoham/Social-v2/internal/domain"
	"github.com/nidoham/Social-v2/internal/store"
)

// ============================================================================
// Document Codec
// ============================================================================
//
// The store exchanges plain field maps; these mappers translate them
// to and from the domain types. Decoding is tolerant of the numeric
// and slice widenings the wire round trip introduces.

func profileToDoc(p domain.Profile) store.Document {
	doc := store.Document{
		"name":      p.Name,
		"username":  p.Username,
		"email":     p.Email,
		"phone":     p.Phone,
		"bio":       p.Bio,
		"avatar":    p.Avatar,
		"cover":     p.Cover,
		"verified":  p.Verified,
		"banned":    p.Banned,
		"created":   p.Created,
		"updated":   p.Updated,
		"gender":    p.Gender,
		"followers": p.Followers,
		"following": p.Following,
		"posts":     p.Posts,
	}

	if p.Online != nil {
		doc["online"] = *p.Online
	}
	if p.Seen != nil {
		doc["seen"] = *p.Seen
	}
	if p.Birthday != nil {
		doc["birthday"] = map[string]interface{}{
			"day":   p.Birthday.Day,
			"month": p.Birthday.Month,
			"year":  p.Birthday.Year,
		}
	}

	return doc
}

func profileFromDoc(doc store.Document) domain.Profile {
	p := domain.Profile{
		Name:      docString(doc, "name"),
		Username:  docString(doc, "username"),
		Email:     docString(doc, "email"),
		Phone:     docString(doc, "phone"),
		Bio:       docString(doc, "bio"),
		Avatar:    docString(doc, "avatar"),
		Cover:     docString(doc, "cover"),
		Verified:  docBool(doc, "verified"),
		Banned:    docBool(doc, "banned"),
		Created:   docTime(doc, "created"),
		Updated:   docTime(doc, "updated"),
		Online:    docTimePtr(doc, "online"),
		Seen:      docTimePtr(doc, "seen"),
		Gender:    docString(doc, "gender"),
		Followers: docInt(doc, "followers"),
		Following: docInt(doc, "following"),
		Posts:     docInt(doc, "posts"),
	}

	if birthday, ok := doc["birthday"].(map[string]interface{}); ok {
		p.Birthday = &domain.DateOfBirth{
			Day:   docInt(birthday, "day"),
			Month: docInt(birthday, "month"),
			Year:  docInt(birthday, "year"),
		}
	}

	return p
}

func userToDoc(u domain.User) store.Document {
	return store.Document{
		"id":        u.ID,
		"profile":   profileToDoc(u.Profile),
		"following": stringsToValues(u.Following),
		"followers": stringsToValues(u.Followers),
		"blocked":   stringsToValues(u.Blocked),
	}
}

func userFromDoc(doc store.Document) domain.User {
	u := domain.User{
		ID:        docString(doc, "id"),
		Following: docStringSlice(doc, "following"),
		Followers: docStringSlice(doc, "followers"),
		Blocked:   docStringSlice(doc, "blocked"),
	}

	if profile, ok := doc["profile"].(map[string]interface{}); ok {
		u.Profile = profileFromDoc(profile)
	}

	return u
}

func stringsToValues(ids []string) []interface{} {
	values := make([]interface{}, len(ids))
	for i, id := range ids {
		values[i] = id
	}
	return values
}

func docString(doc map[string]interface{}, key string) string {
	if s, ok := doc[key].(string); ok {
		return s
	}
	return ""
}

func docBool(doc map[string]interface{}, key string) bool {
	if b, ok := doc[key].(bool); ok {
		return b
	}
	return false
}

func docInt(doc map[string]interface{}, key string) int {
	switch n := doc[key].(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func docTime(doc map[string]interface{}, key string) time.Time {
	if t, ok := doc[key].(time.Time); ok {
		return t
	}
	return time.Time{}
}

func docTimePtr(doc map[string]interface{}, key string) *time.Time {
	if t, ok := doc[key].(time.Time); ok {
		return &t
	}
	return nil
}

func docStringSlice(doc map[string]interface{}, key string) []string {
	switch values := doc[key].(type) {
	case []string:
		out := make([]string, len(values))
		copy(out, values)
		return out
	case []interface{}:
		out := make([]string, 0, len(values))
		for _, v := range values {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
