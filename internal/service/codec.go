package service

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// jsonCodec lets Connect carry plain Go structs as application/json.
type jsonCodec struct {
	name string
}

var (
	codecJSON        = jsonCodec{name: "json"}
	codecJSONCharset = jsonCodec{name: "json; charset=utf-8"}
)

func (c jsonCodec) Name() string { return c.name }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
