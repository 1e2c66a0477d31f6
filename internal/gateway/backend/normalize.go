package backend

import (
	"encoding/json"

	"agriteranga-courier/internal/domain"
)

// The backend wraps list responses in several envelope shapes depending on
// the endpoint and its version:
//
//	[...]                                 bare array
//	{"data": [...]}                       data as array
//	{"data": {"orders": [...]}}           data as object keyed by collection
//
// with pagination either top-level, under "pagination", or inside data.
// parseList resolves all of them into one tagged result so every call site
// shares a single normalization contract.

// listResult is the tagged outcome of envelope normalization.
// Recognized=false means no accepted shape matched; callers degrade to an
// empty collection instead of failing.
type listResult struct {
	Items      []json.RawMessage
	Pagination domain.Pagination
	Recognized bool
}

type paginationDTO struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	Total      int `json:"total"`
}

type listEnvelope struct {
	Status     string          `json:"status"`
	Data       json.RawMessage `json:"data"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
	Total      int             `json:"total"`
	Pagination *paginationDTO  `json:"pagination"`
}

// parseList normalizes a list response body. keys are the collection names
// the endpoint may nest its items under (e.g. "orders", "deliveries").
func parseList(body []byte, keys ...string) listResult {
	// bare array
	var bare []json.RawMessage
	if err := json.Unmarshal(body, &bare); err == nil {
		return recognized(bare, paginationDTO{})
	}

	var env listEnvelope
	if err := json.Unmarshal(body, &env); err != nil || len(env.Data) == 0 {
		return listResult{}
	}

	pg := paginationDTO{Page: env.Page, TotalPages: env.TotalPages, Total: env.Total}
	if env.Pagination != nil {
		pg = *env.Pagination
	}

	// data as array
	var items []json.RawMessage
	if err := json.Unmarshal(env.Data, &items); err == nil {
		return recognized(items, pg)
	}

	// data as object keyed by collection
	var nested map[string]json.RawMessage
	if err := json.Unmarshal(env.Data, &nested); err != nil {
		return listResult{}
	}
	if raw, ok := nested["pagination"]; ok {
		var inner paginationDTO
		if err := json.Unmarshal(raw, &inner); err == nil {
			pg = inner
		}
	}
	for _, key := range keys {
		raw, ok := nested[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &items); err == nil {
			return recognized(items, pg)
		}
	}
	return listResult{}
}

func recognized(items []json.RawMessage, pg paginationDTO) listResult {
	if items == nil {
		items = []json.RawMessage{}
	}
	p := domain.Pagination{Page: pg.Page, TotalPages: pg.TotalPages, Total: pg.Total}
	if p.Total == 0 {
		p.Total = len(items)
	}
	if p.Page == 0 {
		p.Page = 1
	}
	if p.TotalPages == 0 {
		p.TotalPages = 1
	}
	return listResult{Items: items, Pagination: p, Recognized: true}
}

type objectEnvelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// parseObject normalizes a single-record response: the record may be the
// bare body, under "data", or under "data.<key>" for any accepted key.
// Returns nil when no shape matched.
func parseObject(body []byte, keys ...string) json.RawMessage {
	var env objectEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil
	}
	if len(env.Data) == 0 {
		// bare object
		if isObject(body) {
			return body
		}
		return nil
	}
	var nested map[string]json.RawMessage
	if err := json.Unmarshal(env.Data, &nested); err != nil {
		return nil
	}
	for _, key := range keys {
		if raw, ok := nested[key]; ok && isObject(raw) {
			return raw
		}
	}
	if isObject(env.Data) {
		return env.Data
	}
	return nil
}

func isObject(raw []byte) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}
