package logfs

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Egor213/RBACPanel/internal/domain"
)

const textTimestampLayout = "2006-01-02 15:04:05"

// TIMESTAMP - LOGGER - LEVEL - LOCATION - MESSAGE
var textLinePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}) - ([^-]+) - (\w+) - ([^-]+) - (.+)`)

// ParseLine normalizes one log line. Structured JSON objects are tried first, then the
// fixed text layout. ok is false for blank lines and lines matching neither format.
func ParseLine(line string) (entry domain.LogEntry, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return domain.LogEntry{}, false
	}

	if fields, isObject := decodeObject(line); isObject {
		return entryFromFields(fields), true
	}

	return parseTextLine(line)
}

func decodeObject(line string) (map[string]any, bool) {
	if line[0] != '{' {
		return nil, false
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(line), &fields); err != nil || fields == nil {
		return nil, false
	}
	return fields, true
}

func entryFromFields(fields map[string]any) domain.LogEntry {
	entry := domain.LogEntry{
		Timestamp:  stringField(fields, "timestamp"),
		Level:      domain.NormalizeLevel(stringField(fields, "level")),
		Logger:     stringField(fields, "logger"),
		Message:    stringField(fields, "message"),
		Module:     stringField(fields, "module"),
		Function:   stringField(fields, "function"),
		Line:       stringField(fields, "line"),
		Action:     stringField(fields, "action"),
		Page:       stringField(fields, "page"),
		Component:  stringField(fields, "component"),
		Permission: stringField(fields, "permission"),
		Resource:   stringField(fields, "resource"),
		Status:     stringField(fields, "status"),
		ErrorType:  stringField(fields, "error_type"),
		Endpoint:   stringField(fields, "endpoint"),
		Username:   stringField(fields, "username"),

		Duration:       numberField(fields, "duration"),
		StatusCode:     intField(fields, "status_code"),
		ResponseStatus: intField(fields, "response_status"),
		Success:        boolField(fields, "success"),
		Granted:        boolField(fields, "granted"),

		Fields: fields,
	}
	if entry.Endpoint == "" {
		entry.Endpoint = stringField(fields, "api_endpoint")
	}
	return entry
}

func parseTextLine(line string) (domain.LogEntry, bool) {
	m := textLinePattern.FindStringSubmatch(line)
	if m == nil {
		return domain.LogEntry{}, false
	}

	ts, err := time.Parse(textTimestampLayout, m[1])
	if err != nil {
		return domain.LogEntry{}, false
	}

	location := strings.TrimSpace(m[4])
	parts := strings.Split(location, ":")

	entry := domain.LogEntry{
		Timestamp: ts.Format("2006-01-02T15:04:05"),
		Level:     domain.NormalizeLevel(m[3]),
		Logger:    strings.TrimSpace(m[2]),
		Message:   strings.TrimSpace(m[5]),
		Module:    parts[0],
	}
	if len(parts) > 1 {
		entry.Function = parts[1]
	}
	if len(parts) > 2 {
		entry.Line = parts[2]
	}
	return entry, true
}

func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func numberField(fields map[string]any, key string) *float64 {
	v, ok := fields[key].(float64)
	if !ok {
		return nil
	}
	return &v
}

func intField(fields map[string]any, key string) *int {
	switch v := fields[key].(type) {
	case float64:
		n := int(v)
		return &n
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil
		}
		return &n
	default:
		return nil
	}
}

func boolField(fields map[string]any, key string) *bool {
	v, ok := fields[key].(bool)
	if !ok {
		return nil
	}
	return &v
}
