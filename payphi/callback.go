package payphi

import (
	"bytes"
	"encoding/json"
	"mime"
	"net/url"
	"sort"
	"strings"

	"cinema_factory/model"
)

// Payload is a callback body reduced to flat string fields. Kind records which
// branch of the parse chain produced it.
type Payload struct {
	Kind   model.CallbackEventKind
	Fields map[string]string
}

func emptyPayload() Payload {
	return Payload{Kind: model.CallbackEmpty, Fields: map[string]string{}}
}

// ParseCallback never fails: a body nothing can make sense of becomes an Empty payload.
func ParseCallback(contentType string, body []byte) Payload {
	if len(bytes.TrimSpace(body)) == 0 {
		return emptyPayload()
	}

	switch mediaType(contentType) {
	case "application/json":
		if fields, ok := parseJSONObject(body); ok {
			return Payload{Kind: model.CallbackJSON, Fields: fields}
		}
	case "application/x-www-form-urlencoded":
		if fields, ok := parseForm(body); ok {
			return Payload{Kind: model.CallbackFormEncoded, Fields: fields}
		}
	}

	if fields, ok := parseJSONObject(body); ok {
		return Payload{Kind: model.CallbackRawFallback, Fields: fields}
	}
	if fields := splitPairs(string(body)); len(fields) > 0 {
		return Payload{Kind: model.CallbackRawFallback, Fields: fields}
	}
	return emptyPayload()
}

func mediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	}
	return mt
}

func parseJSONObject(body []byte) (map[string]string, bool) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil || raw == nil {
		return nil, false
	}
	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		switch v := v.(type) {
		case nil:
		case string:
			fields[k] = v
		case json.Number:
			fields[k] = v.String()
		case bool:
			if v {
				fields[k] = "true"
			} else {
				fields[k] = "false"
			}
		default:
			b, err := json.Marshal(v)
			if err == nil {
				fields[k] = string(b)
			}
		}
	}
	return fields, true
}

func parseForm(body []byte) (map[string]string, bool) {
	// ParseQuery keeps every pair it could decode; the error only names the ones it dropped.
	values, _ := url.ParseQuery(string(body))
	if len(values) == 0 {
		return nil, false
	}
	fields := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}
	return fields, true
}

// splitPairs is the last resort for bodies with an undeclared or unknown type.
// Pairs whose value cannot be percent-decoded are skipped.
func splitPairs(raw string) map[string]string {
	fields := map[string]string{}
	for _, pair := range strings.Split(strings.TrimSpace(raw), "&") {
		key, value, _ := strings.Cut(pair, "=")
		if key == "" {
			continue
		}
		decoded, err := url.QueryUnescape(value)
		if err != nil {
			continue
		}
		fields[key] = decoded
	}
	return fields
}

// Lookup returns the first non-empty value among names. Exact keys win; when
// foldCase is set a case-insensitive match is tried for each name afterwards,
// visiting keys in sorted order.
func (p Payload) Lookup(names []string, foldCase bool) string {
	var keys []string
	for _, name := range names {
		if v := strings.TrimSpace(p.Fields[name]); v != "" {
			return v
		}
		if !foldCase {
			continue
		}
		if keys == nil {
			keys = p.sortedKeys()
		}
		for _, k := range keys {
			if !strings.EqualFold(k, name) {
				continue
			}
			if v := strings.TrimSpace(p.Fields[k]); v != "" {
				return v
			}
		}
	}
	return ""
}

func (p Payload) sortedKeys() []string {
	keys := make([]string, 0, len(p.Fields))
	for k := range p.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the raw value of one field, empty when absent.
func (p Payload) Get(name string) string {
	return p.Fields[name]
}
