package driver

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"ycp/interpreter-go/pkg/runtime"
)

// Value trees are written in YAML. Plain scalars and sequences map to the
// matching values (null is Void). Everything else is a mapping with one
// tagging key:
//
//	{path: .a.b}
//	{bytes: 0a0b}
//	{map: [{key: k, value: v}, ...]}
//	{term: Name, args: [...]}
//	{builtin: plus, args: [...]}   operator application
//	{ref: plus, args: [...]}       builtin reference
//	{locale: [singular, plural, count]}
//	{error: message}

// ParseValue decodes one YAML document into a value.
func ParseValue(data []byte) (runtime.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("driver: parse value: %w", err)
	}
	v, err := DecodeValue(&doc)
	if err != nil {
		return nil, fmt.Errorf("driver: %w", err)
	}
	return v, nil
}

// DecodeValue converts a YAML node into a value.
func DecodeValue(n *yaml.Node) (runtime.Value, error) {
	switch n.Kind {
	case 0:
		return runtime.Void, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return runtime.Void, nil
		}
		return DecodeValue(n.Content[0])
	case yaml.AliasNode:
		return DecodeValue(n.Alias)
	case yaml.ScalarNode:
		return decodeScalar(n)
	case yaml.SequenceNode:
		elements, err := decodeSeq(n)
		if err != nil {
			return nil, err
		}
		return runtime.ListValue{Elements: elements}, nil
	case yaml.MappingNode:
		return decodeTagged(n)
	}
	return nil, fmt.Errorf("line %d: unsupported node", n.Line)
}

func decodeScalar(n *yaml.Node) (runtime.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return runtime.Void, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return runtime.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, err
		}
		return runtime.Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return runtime.Float(f), nil
	case "!!str":
		return runtime.Str(n.Value), nil
	}
	return nil, fmt.Errorf("line %d: unsupported scalar tag %s", n.Line, n.ShortTag())
}

func decodeSeq(n *yaml.Node) ([]runtime.Value, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: expected a sequence", n.Line)
	}
	out := make([]runtime.Value, len(n.Content))
	for idx, child := range n.Content {
		v, err := DecodeValue(child)
		if err != nil {
			return nil, err
		}
		out[idx] = v
	}
	return out, nil
}

func decodeTagged(n *yaml.Node) (runtime.Value, error) {
	fields := make(map[string]*yaml.Node, len(n.Content)/2)
	var tag string
	for idx := 0; idx+1 < len(n.Content); idx += 2 {
		key := n.Content[idx].Value
		if _, dup := fields[key]; dup {
			return nil, fmt.Errorf("line %d: duplicate key %q", n.Content[idx].Line, key)
		}
		fields[key] = n.Content[idx+1]
		if key == "args" {
			continue
		}
		if tag != "" {
			return nil, fmt.Errorf("line %d: keys %q and %q are exclusive", n.Line, tag, key)
		}
		tag = key
	}
	var args []runtime.Value
	if node, ok := fields["args"]; ok {
		if tag != "term" && tag != "builtin" && tag != "ref" {
			return nil, fmt.Errorf("line %d: args only apply to term, builtin and ref", n.Line)
		}
		decoded, err := decodeSeq(node)
		if err != nil {
			return nil, err
		}
		args = decoded
	}
	body := fields[tag]

	switch tag {
	case "path":
		return runtime.ParsePath(body.Value), nil
	case "bytes":
		data, err := hex.DecodeString(strings.TrimSpace(body.Value))
		if err != nil {
			return nil, fmt.Errorf("line %d: bytes: %w", body.Line, err)
		}
		return runtime.ByteblockValue{Data: data}, nil
	case "map":
		return decodeMap(body)
	case "term":
		if body.Value == "" {
			return nil, fmt.Errorf("line %d: term without name", body.Line)
		}
		return runtime.TermValue{Name: body.Value, Args: args}, nil
	case "builtin", "ref":
		code, ok := runtime.OpcodeByName(body.Value)
		if !ok {
			return nil, fmt.Errorf("line %d: unknown operator %q", body.Line, body.Value)
		}
		return runtime.BuiltinValue{Code: code, Args: args, Apply: tag == "builtin"}, nil
	case "locale":
		return decodeLocale(body)
	case "error":
		return runtime.ErrorValue{Message: body.Value}, nil
	case "":
		return nil, fmt.Errorf("line %d: empty mapping", n.Line)
	}
	return nil, fmt.Errorf("line %d: unknown value tag %q", n.Line, tag)
}

func decodeMap(n *yaml.Node) (runtime.Value, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: map entries must be a sequence", n.Line)
	}
	entries := make([]runtime.MapEntry, 0, len(n.Content))
	for _, item := range n.Content {
		var raw struct {
			Key   yaml.Node `yaml:"key"`
			Value yaml.Node `yaml:"value"`
		}
		if err := item.Decode(&raw); err != nil {
			return nil, fmt.Errorf("line %d: map entry: %w", item.Line, err)
		}
		if raw.Key.Kind == 0 {
			return nil, fmt.Errorf("line %d: map entry without key", item.Line)
		}
		key, err := DecodeValue(&raw.Key)
		if err != nil {
			return nil, err
		}
		val, err := DecodeValue(&raw.Value)
		if err != nil {
			return nil, err
		}
		entries = append(entries, runtime.MapEntry{Key: key, Value: val})
	}
	return runtime.NewMap(entries...), nil
}

func decodeLocale(n *yaml.Node) (runtime.Value, error) {
	if n.Kind != yaml.SequenceNode || len(n.Content) != 3 {
		return nil, fmt.Errorf("line %d: locale needs [singular, plural, count]", n.Line)
	}
	var count int64
	if err := n.Content[2].Decode(&count); err != nil {
		return nil, fmt.Errorf("line %d: locale count: %w", n.Line, err)
	}
	return runtime.Locale(n.Content[0].Value, n.Content[1].Value, count), nil
}

// MarshalValue renders v in the YAML form read by ParseValue.
func MarshalValue(v runtime.Value) ([]byte, error) {
	node, err := EncodeValue(v)
	if err != nil {
		return nil, fmt.Errorf("driver: %w", err)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("driver: marshal value: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("driver: encoder close: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeValue converts v into a YAML node. Null has no encoding.
func EncodeValue(v runtime.Value) (*yaml.Node, error) {
	if v == nil {
		return nil, fmt.Errorf("cannot encode null")
	}
	switch val := v.(type) {
	case runtime.NullValue:
		return nil, fmt.Errorf("cannot encode null")
	case runtime.VoidValue:
		return scalar("!!null", "null"), nil
	case runtime.BoolValue:
		return scalar("!!bool", strconv.FormatBool(val.Val)), nil
	case runtime.IntegerValue:
		return scalar("!!int", strconv.FormatInt(val.Val, 10)), nil
	case runtime.FloatValue:
		return scalar("!!float", yamlFloat(val.Val)), nil
	case runtime.StringValue:
		return scalar("!!str", val.Val), nil
	case runtime.PathValue:
		return tagged("path", scalar("!!str", "."+strings.Join(val.Segments, ".")), nil), nil
	case runtime.ByteblockValue:
		return tagged("bytes", scalar("!!str", hex.EncodeToString(val.Data)), nil), nil
	case runtime.ListValue:
		return encodeSeq(val.Elements)
	case runtime.MapValue:
		entries := &yaml.Node{Kind: yaml.SequenceNode}
		for _, e := range val.Entries() {
			key, err := EncodeValue(e.Key)
			if err != nil {
				return nil, err
			}
			value, err := EncodeValue(e.Value)
			if err != nil {
				return nil, err
			}
			entries.Content = append(entries.Content, mapping(scalar("!!str", "key"), key, scalar("!!str", "value"), value))
		}
		return tagged("map", entries, nil), nil
	case runtime.TermValue:
		args, err := encodeArgs(val.Args)
		if err != nil {
			return nil, err
		}
		return tagged("term", scalar("!!str", val.Name), args), nil
	case runtime.BuiltinValue:
		args, err := encodeArgs(val.Args)
		if err != nil {
			return nil, err
		}
		tag := "ref"
		if val.Apply {
			tag = "builtin"
		}
		return tagged(tag, scalar("!!str", val.Code.String()), args), nil
	case runtime.LocaleValue:
		parts := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle, Content: []*yaml.Node{
			scalar("!!str", val.Singular),
			scalar("!!str", val.Plural),
			scalar("!!int", strconv.FormatInt(val.Count, 10)),
		}}
		return tagged("locale", parts, nil), nil
	case runtime.ErrorValue:
		return tagged("error", scalar("!!str", val.Message), nil), nil
	}
	return nil, fmt.Errorf("cannot encode %s", v.Kind())
}

func encodeSeq(values []runtime.Value) (*yaml.Node, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, elem := range values {
		child, err := EncodeValue(elem)
		if err != nil {
			return nil, err
		}
		seq.Content = append(seq.Content, child)
	}
	return seq, nil
}

func encodeArgs(values []runtime.Value) (*yaml.Node, error) {
	if len(values) == 0 {
		return nil, nil
	}
	return encodeSeq(values)
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func mapping(pairs ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Content: pairs}
}

func tagged(tag string, body, args *yaml.Node) *yaml.Node {
	m := mapping(scalar("!!str", tag), body)
	if args != nil {
		m.Content = append(m.Content, scalar("!!str", "args"), args)
	}
	return m
}

func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return runtime.FormatFloat(f)
}
