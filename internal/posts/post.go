package posts

import "encoding/json"

// Post is a post resource as served by the upstream API. The object is passed
// through unmodified; only id and title are guaranteed by the wire contract.
type Post map[string]any

// ID returns the post id, or 0 when the field is missing or not a number.
func (p Post) ID() int {
	return intField(p, "id")
}

// UserID returns the owning user id, or 0 when absent.
func (p Post) UserID() int {
	return intField(p, "userId")
}

func (p Post) Title() string {
	s, _ := p["title"].(string)
	return s
}

func (p Post) Body() string {
	s, _ := p["body"].(string)
	return s
}

func intField(p Post, key string) int {
	switch v := p[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	default:
		return 0
	}
}
