package journal

import "github.com/vmihailenco/msgpack/v5"

// EncodeValue serializes an event payload with msgpack. Callers treat a
// failure as "payload not recordable" and journal the record without one.
func EncodeValue(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return msgpack.Marshal(v)
}

// DecodeValue deserializes a payload previously produced by EncodeValue.
// A nil or empty payload decodes to the zero value.
func DecodeValue[T any](data []byte) (T, error) {
	var v T
	if len(data) == 0 {
		return v, nil
	}
	if err := msgpack.Unmarshal(data, &v); err != nil {
		return v, err
	}
	return v, nil
}
