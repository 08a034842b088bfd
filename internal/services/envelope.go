package services

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeList unmarshals a list from the backend's inconsistent envelopes.
// Accepted shapes, tried in order: a raw array, {"data": [...]},
// {"data": {"<key>": [...]}} and {"<key>": [...]} for each key given.
// An absent list decodes to an empty slice.
func DecodeList[T any](body []byte, keys ...string) ([]T, error) {
	body = bytes.TrimSpace(body)
	out := []T{}
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return out, nil
	}

	if body[0] == '[' {
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return out, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	if data, ok := envelope["data"]; ok {
		data = bytes.TrimSpace(data)
		if len(data) > 0 && data[0] == '[' {
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, fmt.Errorf("decode data list: %w", err)
			}
			return out, nil
		}
		if len(data) > 0 && data[0] == '{' {
			var inner map[string]json.RawMessage
			if err := json.Unmarshal(data, &inner); err == nil {
				if list, ok, err := findList[T](inner, keys); ok || err != nil {
					return list, err
				}
			}
		}
	}

	if list, ok, err := findList[T](envelope, keys); ok || err != nil {
		return list, err
	}
	return out, nil
}

func findList[T any](m map[string]json.RawMessage, keys []string) ([]T, bool, error) {
	for _, key := range keys {
		raw := bytes.TrimSpace(m[key])
		if len(raw) == 0 || raw[0] != '[' {
			continue
		}
		out := []T{}
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, false, fmt.Errorf("decode %s list: %w", key, err)
		}
		return out, true, nil
	}
	return nil, false, nil
}

// DecodeObject unmarshals {"data": {...}} or a raw object into dst.
func DecodeObject(body []byte, dst any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err == nil {
		if data, ok := envelope["data"]; ok {
			data = bytes.TrimSpace(data)
			if len(data) > 0 && data[0] == '{' {
				return json.Unmarshal(data, dst)
			}
		}
	}
	return json.Unmarshal(body, dst)
}

// PageInfo is the backend's own pagination block, when present.
type PageInfo struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// DecodePageInfo extracts pagination metadata from {"data": {...}} or
// {"data": {"pagination": {...}}}. Missing info returns ok=false.
func DecodePageInfo(body []byte) (PageInfo, bool) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Data) == 0 {
		return PageInfo{}, false
	}

	var wrapped struct {
		Pagination *PageInfo `json:"pagination"`
	}
	if err := json.Unmarshal(envelope.Data, &wrapped); err == nil && wrapped.Pagination != nil {
		return *wrapped.Pagination, true
	}

	var info PageInfo
	if err := json.Unmarshal(envelope.Data, &info); err != nil || info.TotalPages == 0 && info.Total == 0 {
		return PageInfo{}, false
	}
	return info, true
}
