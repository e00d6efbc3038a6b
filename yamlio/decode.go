package yamlio

import (
	"io"
	"strconv"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"github.com/teamworkguy2/datatransfer/stream"
)

// NewReader creates a Reader over the YAML document read from r. The
// document is parsed in full on the first token request. If r is an
// io.Closer it is closed by the Reader's Close.
func NewReader(r io.Reader, opts ...Option) *stream.Reader {
	return stream.NewReader(&source{r: r}, buildOpts(opts, r)...)
}

type source struct {
	r      io.Reader
	parsed bool
	elems  []stream.Element
}

func (s *source) Next() (stream.Element, error) {
	if !s.parsed {
		s.parsed = true
		if err := s.parse(); err != nil {
			return stream.Element{}, err
		}
	}
	if len(s.elems) == 0 {
		return stream.Element{}, io.EOF
	}
	e := s.elems[0]
	s.elems = s.elems[1:]
	return e, nil
}

func (s *source) parse() error {
	b, err := io.ReadAll(s.r)
	if err != nil {
		return err
	}
	f, err := parser.ParseBytes(b, 0)
	if err != nil {
		return malformed(err, "cannot parse document")
	}
	var body ast.Node
	for _, doc := range f.Docs {
		if doc.Body == nil {
			continue
		}
		if body != nil {
			return malformed(nil, "more than one document")
		}
		body = doc.Body
	}
	if body == nil {
		return malformed(io.ErrUnexpectedEOF, "empty document")
	}
	return s.entries(body)
}

// entries flattens the entries of a container node.
func (s *source) entries(n ast.Node) error {
	switch c := n.(type) {
	case *ast.SequenceNode:
		for _, item := range c.Values {
			if err := s.item(item); err != nil {
				return err
			}
		}
		return nil
	case *ast.MappingNode:
		for _, mv := range c.Values {
			if err := s.named(mv); err != nil {
				return err
			}
		}
		return nil
	case *ast.MappingValueNode:
		return s.named(c)
	}
	return malformed(nil, "line %d: expected a sequence or mapping", line(n))
}

func (s *source) item(n ast.Node) error {
	switch n.(type) {
	case *ast.MappingNode, *ast.MappingValueNode:
		return s.entries(n)
	case *ast.SequenceNode:
		return malformed(nil, "line %d: anonymous nested sequence", line(n))
	}
	v, err := value(n)
	if err != nil {
		return err
	}
	s.elems = append(s.elems, stream.Leaf("", v))
	return nil
}

func (s *source) named(mv *ast.MappingValueNode) error {
	name := key(mv.Key)
	switch mv.Value.(type) {
	case *ast.SequenceNode, *ast.MappingNode, *ast.MappingValueNode:
		s.elems = append(s.elems, stream.Start(name))
		if err := s.entries(mv.Value); err != nil {
			return err
		}
		s.elems = append(s.elems, stream.End(name))
		return nil
	}
	v, err := value(mv.Value)
	if err != nil {
		return err
	}
	s.elems = append(s.elems, stream.Leaf(name, v))
	return nil
}

func key(k ast.MapKeyNode) string {
	if sn, ok := k.(*ast.StringNode); ok {
		return sn.Value
	}
	return k.GetToken().Value
}

func value(n ast.Node) (stream.Value, error) {
	switch v := n.(type) {
	case nil, *ast.NullNode:
		return stream.StringValue(""), nil
	case *ast.StringNode:
		return stream.StringValue(v.Value), nil
	case *ast.LiteralNode:
		return stream.StringValue(v.Value.Value), nil
	case *ast.BoolNode:
		return stream.BoolValue(v.Value), nil
	case *ast.IntegerNode, *ast.FloatNode:
		return stream.NumberValue(n.GetToken().Value), nil
	case *ast.InfinityNode:
		return stream.NumberValue(strconv.FormatFloat(v.Value, 'g', -1, 64)), nil
	case *ast.NanNode:
		return stream.NumberValue("NaN"), nil
	}
	return stream.Value{}, malformed(nil, "line %d: unsupported %s node", line(n), n.Type())
}

func line(n ast.Node) int {
	if tk := n.GetToken(); tk != nil && tk.Position != nil {
		return tk.Position.Line
	}
	return 0
}

func malformed(cause error, format string, args ...any) error {
	return stream.FormatError("Next", "", cause, format, args...)
}
