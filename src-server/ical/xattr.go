package ical

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"icsgen/src-server/ical/utils"

	"gopkg.in/yaml.v3"
)

const errNotAString = "key or value is not a string"

// One vendor extension (X-) attribute in its canonical shape.
type XAttr struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// The shape an XInput was supplied in.
type XShape int

const (
	XShapeNone XShape = iota
	XShapeList
	XShapeTuples
	XShapeMap
)

// A batch of extension attributes in one of the three accepted shapes:
//   - a list of {key, value} objects, see XFromList
//   - a list of [key, value] tuples, see XFromTuples
//   - a mapping from key to value, see XFromMap
//
// The zero value carries nothing. Every shape normalizes to the same ordered
// pair list, see NormalizeX.
type XInput struct {
	shape  XShape
	list   []XAttr
	tuples [][]string
	keys   []string
	values map[string]string
}

// Extension attributes given as {key, value} objects
func XFromList(attrs ...XAttr) XInput {
	list := make([]XAttr, len(attrs))
	copy(list, attrs)
	return XInput{shape: XShapeList, list: list}
}

// Extension attributes given as [key, value] tuples. A tuple that doesn't hold
// exactly two elements is rejected by NormalizeX.
func XFromTuples(tuples ...[]string) XInput {
	cloned := make([][]string, len(tuples))
	for i, tuple := range tuples {
		cloned[i] = append([]string(nil), tuple...)
	}
	return XInput{shape: XShapeTuples, tuples: cloned}
}

// Extension attributes given as a mapping. Go maps have no order, so the keys
// are emitted sorted; mappings decoded from JSON or YAML keep document order.
func XFromMap(m map[string]string) XInput {
	keys := make([]string, 0, len(m))
	values := make(map[string]string, len(m))
	for key, value := range m {
		keys = append(keys, key)
		values[key] = value
	}
	sort.Strings(keys)
	return XInput{shape: XShapeMap, keys: keys, values: values}
}

// Get the shape the input was supplied in
func (in XInput) Shape() XShape {
	return in.shape
}

// Report whether the input carries no shape at all
func (in XInput) IsZero() bool {
	return in.shape == XShapeNone
}

// Convert any accepted shape into the canonical ordered pair list. Normalizing
// the list of an already normalized input yields the same list.
func NormalizeX(in XInput) ([][2]string, error) {
	switch in.shape {
	case XShapeNone:
		return nil, nil
	case XShapeList:
		pairs := make([][2]string, 0, len(in.list))
		for _, attr := range in.list {
			pairs = append(pairs, [2]string{attr.Key, attr.Value})
		}
		return pairs, nil
	case XShapeTuples:
		pairs := make([][2]string, 0, len(in.tuples))
		for i, tuple := range in.tuples {
			if len(tuple) != 2 {
				return nil, invalidArgument(errNotAString, map[string]any{
					"index":  i,
					"length": len(tuple),
				})
			}
			pairs = append(pairs, [2]string{tuple[0], tuple[1]})
		}
		return pairs, nil
	case XShapeMap:
		pairs := make([][2]string, 0, len(in.keys))
		for _, key := range in.keys {
			pairs = append(pairs, [2]string{key, in.values[key]})
		}
		return pairs, nil
	default:
		return nil, invalidArgument("unknown extension shape", map[string]any{"shape": in.shape})
	}
}

// #region Encoding

// Always encodes the canonical {key, value} list
func (in XInput) MarshalJSON() ([]byte, error) {
	pairs, err := NormalizeX(in)
	if err != nil {
		return nil, err
	}
	return json.Marshal(pairsToAttrs(pairs))
}

// Accepts `null`, a list of {key, value} objects, a list of [key, value]
// tuples or an object. Object keys keep their document order.
func (in *XInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*in = XInput{}
		return nil
	case data[0] == '{':
		return in.unmarshalJSONObject(data)
	case data[0] == '[':
		return in.unmarshalJSONArray(data)
	default:
		return invalidArgument(errNotAString, map[string]any{"input": string(data)})
	}
}

func (in *XInput) unmarshalJSONObject(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}

	result := XInput{shape: XShapeMap, values: make(map[string]string)}
	for dec.More() {
		token, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := token.(string)
		if !ok {
			return invalidArgument(errNotAString, map[string]any{"key": token})
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		value, err := jsonString(raw)
		if err != nil {
			return err
		}
		if _, seen := result.values[key]; !seen {
			result.keys = append(result.keys, key)
		}
		result.values[key] = value
	}
	*in = result
	return nil
}

func (in *XInput) unmarshalJSONArray(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	var list []XAttr
	var tuples [][]string
	for i, item := range items {
		item = bytes.TrimSpace(item)
		switch {
		case len(item) > 0 && item[0] == '{' && tuples == nil:
			var fields map[string]json.RawMessage
			if err := json.Unmarshal(item, &fields); err != nil {
				return err
			}
			key, err := jsonString(fields["key"])
			if err != nil {
				return err
			}
			value, err := jsonString(fields["value"])
			if err != nil {
				return err
			}
			list = append(list, XAttr{Key: key, Value: value})
		case len(item) > 0 && item[0] == '[' && list == nil:
			var elems []json.RawMessage
			if err := json.Unmarshal(item, &elems); err != nil {
				return err
			}
			tuple := make([]string, 0, len(elems))
			for _, elem := range elems {
				s, err := jsonString(elem)
				if err != nil {
					return err
				}
				tuple = append(tuple, s)
			}
			tuples = append(tuples, tuple)
		default:
			return invalidArgument(errNotAString, map[string]any{"index": i})
		}
	}

	if tuples != nil {
		*in = XInput{shape: XShapeTuples, tuples: tuples}
		return nil
	}
	if list == nil {
		list = []XAttr{}
	}
	*in = XInput{shape: XShapeList, list: list}
	return nil
}

func jsonString(raw json.RawMessage) (string, error) {
	var s string
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' || json.Unmarshal(raw, &s) != nil {
		return "", invalidArgument(errNotAString, map[string]any{"value": string(raw)})
	}
	return s, nil
}

// Always encodes the canonical {key, value} list
func (in XInput) MarshalYAML() (any, error) {
	pairs, err := NormalizeX(in)
	if err != nil {
		return nil, err
	}
	return pairsToAttrs(pairs), nil
}

// Same shapes as UnmarshalJSON. YAML has implicit scalar typing, so any scalar
// counts as a string; sequences and mappings in key or value position don't.
func (in *XInput) UnmarshalYAML(node *yaml.Node) error {
	switch {
	case node.Kind == yaml.ScalarNode && node.Tag == "!!null":
		*in = XInput{}
		return nil
	case node.Kind == yaml.MappingNode:
		result := XInput{shape: XShapeMap, values: make(map[string]string)}
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, err := yamlString(node.Content[i])
			if err != nil {
				return err
			}
			value, err := yamlString(node.Content[i+1])
			if err != nil {
				return err
			}
			if _, seen := result.values[key]; !seen {
				result.keys = append(result.keys, key)
			}
			result.values[key] = value
		}
		*in = result
		return nil
	case node.Kind == yaml.SequenceNode:
		var list []XAttr
		var tuples [][]string
		for i, item := range node.Content {
			switch {
			case item.Kind == yaml.MappingNode && tuples == nil:
				attr := XAttr{}
				found := 0
				for j := 0; j+1 < len(item.Content); j += 2 {
					value, err := yamlString(item.Content[j+1])
					if err != nil {
						return err
					}
					switch item.Content[j].Value {
					case "key":
						attr.Key = value
						found++
					case "value":
						attr.Value = value
						found++
					}
				}
				if found != 2 {
					return invalidArgument(errNotAString, map[string]any{"index": i})
				}
				list = append(list, attr)
			case item.Kind == yaml.SequenceNode && list == nil:
				tuple := make([]string, 0, len(item.Content))
				for _, elem := range item.Content {
					s, err := yamlString(elem)
					if err != nil {
						return err
					}
					tuple = append(tuple, s)
				}
				tuples = append(tuples, tuple)
			default:
				return invalidArgument(errNotAString, map[string]any{"index": i})
			}
		}
		if tuples != nil {
			*in = XInput{shape: XShapeTuples, tuples: tuples}
			return nil
		}
		if list == nil {
			list = []XAttr{}
		}
		*in = XInput{shape: XShapeList, list: list}
		return nil
	default:
		return invalidArgument(errNotAString, map[string]any{"line": node.Line})
	}
}

func yamlString(node *yaml.Node) (string, error) {
	if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		return "", invalidArgument(errNotAString, map[string]any{"line": node.Line})
	}
	return node.Value, nil
}

// #endregion

// #region Call intents

// One call against an extension accessor: XGet, XSet or XPair
type XCall interface {
	xCall()
}

// Read the current extension list
type XGet struct{}

// Append a batch of extension attributes
type XSet struct {
	Input XInput
}

// Append a single extension attribute
type XPair struct {
	Key   string
	Value string
}

func (XGet) xCall()  {}
func (XSet) xCall()  {}
func (XPair) xCall() {}

// #endregion

// The per-entity extension list. Insertion order is kept and duplicate keys
// are never merged.
type extensions [][2]string

func (x extensions) list() []XAttr {
	return pairsToAttrs(x)
}

// Append a batch; on error the list is left untouched
func (x *extensions) append(in XInput) error {
	pairs, err := NormalizeX(in)
	if err != nil {
		return err
	}
	*x = append(*x, pairs...)
	return nil
}

func (x *extensions) add(key string, value string) {
	*x = append(*x, [2]string{key, value})
}

// Dispatch a call intent. Set calls return the list after the change.
func (x *extensions) apply(call XCall) ([]XAttr, error) {
	switch call := call.(type) {
	case XGet:
		return x.list(), nil
	case XSet:
		if err := x.append(call.Input); err != nil {
			return nil, err
		}
		return x.list(), nil
	case XPair:
		x.add(call.Key, call.Value)
		return x.list(), nil
	default:
		return nil, invalidArgument(errNotAString, map[string]any{"call": call})
	}
}

// Render as parameters: `;KEY=escaped-value` for every pair
func (x extensions) params() string {
	var sb strings.Builder
	for _, pair := range x {
		sb.WriteString(";" + utils.UpperKey(pair[0]) + "=" + utils.Escape(pair[1]))
	}
	return sb.String()
}

// Render as standalone property lines: `KEY:escaped-value` for every pair
func (x extensions) lines() []string {
	lines := make([]string, 0, len(x))
	for _, pair := range x {
		lines = append(lines, utils.UpperKey(pair[0])+":"+utils.Escape(pair[1]))
	}
	return lines
}

func pairsToAttrs(pairs [][2]string) []XAttr {
	attrs := make([]XAttr, 0, len(pairs))
	for _, pair := range pairs {
		attrs = append(attrs, XAttr{Key: pair[0], Value: pair[1]})
	}
	return attrs
}
