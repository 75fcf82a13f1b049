package render

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FormatArguments renders a tool call's JSON argument object as a
// "key=value" list. The object is re-serialized compactly with its key order
// preserved, every ':' becomes '=' and the outer braces are dropped:
//
//	{"location": "New York", "time": "now"} -> "location"="New York","time"="now"
//
// A ':' inside a string value is replaced as well. When the arguments are not
// a JSON object the raw string is returned unchanged.
func FormatArguments(arguments string) string {
	if strings.TrimSpace(arguments) == "" {
		return ""
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(arguments), &obj); err != nil || obj == nil {
		return arguments
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(arguments)); err != nil {
		return arguments
	}

	compact := strings.ReplaceAll(buf.String(), ":", "=")

	return compact[1 : len(compact)-1]
}
