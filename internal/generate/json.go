package generate

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// decodeOutline unmarshals generator output into an Outline. Models
// occasionally wrap the JSON in prose or emit slightly broken syntax,
// so the raw text is trimmed to its outermost object and repaired
// before a retry.
func decodeOutline(text string) (*Outline, error) {
	data := []byte(extractObject(text))
	var outline Outline
	err := json.Unmarshal(data, &outline)
	if err == nil {
		return &outline, nil
	}
	if _, ok := err.(*json.SyntaxError); ok {
		fixed, rerr := jsonrepair.JSONRepair(string(data))
		if rerr != nil {
			return nil, err
		}
		if uerr := json.Unmarshal([]byte(fixed), &outline); uerr == nil {
			return &outline, nil
		}
	}
	return nil, err
}

// extractObject returns the substring spanning the first '{' through
// the last '}' so leading/trailing prose does not break the decode.
func extractObject(text string) string {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return text
	}
	return text[start : end+1]
}
