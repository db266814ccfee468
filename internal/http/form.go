package http

import (
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"
)

// EncodeForm turns an input struct into form values. Nil pointer fields
// tagged omitempty are left out. url.Values pass through unchanged and a nil
// body yields an empty form.
func EncodeForm(body interface{}) (url.Values, error) {
	switch typed := body.(type) {
	case nil:
		return url.Values{}, nil
	case url.Values:
		return typed, nil
	case map[string]string:
		values := url.Values{}
		for key, value := range typed {
			values.Set(key, value)
		}

		return values, nil
	}

	values, err := query.Values(body)
	if err != nil {
		return nil, fmt.Errorf("encoding form body: %w", err)
	}

	return values, nil
}

// BuildPath interpolates path arguments into format after escaping each one
// as a single path segment.
func BuildPath(format string, args ...interface{}) string {
	escaped := make([]interface{}, len(args))

	for i, arg := range args {
		escaped[i] = url.PathEscape(fmt.Sprint(arg))
	}

	return fmt.Sprintf(format, escaped...)
}
