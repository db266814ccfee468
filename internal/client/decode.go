package client

import (
	"encoding/json"

	"github.com/fivetwenty-io/fastly/pkg/fastly"
)

// decode unmarshals a success body, reporting failures as *fastly.DecodeError.
func decode[T any](body []byte) (*T, error) {
	var out T

	err := json.Unmarshal(body, &out)
	if err != nil {
		return nil, &fastly.DecodeError{Body: body, Err: err}
	}

	return &out, nil
}

// decodeList unmarshals a JSON array body.
func decodeList[T any](body []byte) ([]*T, error) {
	out := make([]*T, 0)

	err := json.Unmarshal(body, &out)
	if err != nil {
		return nil, &fastly.DecodeError{Body: body, Err: err}
	}

	return out, nil
}
