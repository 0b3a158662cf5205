package grpcv1

import (
	"encoding/json"

	"github.com/Egor213/RBACPanel/internal/controller/common/validators"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// LogQueryFromStruct decodes request fields using the same names as the HTTP query string.
func LogQueryFromStruct(req *structpb.Struct) (validators.LogQuery, error) {
	var q validators.LogQuery
	if req == nil || len(req.GetFields()) == 0 {
		return q, nil
	}
	raw, err := protojson.Marshal(req)
	if err != nil {
		return q, err
	}
	if err := json.Unmarshal(raw, &q); err != nil {
		return q, err
	}
	return q, nil
}

// ToStruct converts any JSON-encodable object into a Struct. Non-object values are
// wrapped under the given key.
func ToStruct(key string, v any) (*structpb.Struct, error) {
	if key != "" {
		v = map[string]any{key: v}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}
