// Package recovery extracts a JSON document from text that may carry
// non-JSON preamble or postamble, such as profiler console output.
package recovery

import (
	"errors"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/bytedance/sonic/ast"

	"github.com/crimson-sun/armnn2perfetto/internal/model"
)

var errInvalid = errors.New("candidate is not valid JSON")

// delimiters are tried in order: objects first, then arrays.
var delimiters = []struct{ open, close byte }{
	{'{', '}'},
	{'[', ']'},
}

// Recover locates the span between the first opening and the last closing
// delimiter and parses it. Objects are tried before arrays.
// The returned node is fully loaded and keeps document key order.
func Recover(text string) (ast.Node, error) {
	var lastErr error
	for _, d := range delimiters {
		start := strings.IndexByte(text, d.open)
		end := strings.LastIndexByte(text, d.close)
		if start == -1 || end <= start {
			continue
		}
		node, err := parse(text[start : end+1])
		if err != nil {
			lastErr = err
			continue
		}
		return node, nil
	}
	if lastErr != nil {
		return ast.Node{}, &model.MalformedInputError{Reason: "located document does not parse", Err: lastErr}
	}
	return ast.Node{}, &model.MalformedInputError{Reason: "no JSON object or array found"}
}

func parse(candidate string) (ast.Node, error) {
	if !sonic.ConfigStd.Valid([]byte(candidate)) {
		return ast.Node{}, errInvalid
	}
	node, err := sonic.GetFromString(candidate)
	if err != nil {
		return ast.Node{}, err
	}
	if err := node.LoadAll(); err != nil {
		return ast.Node{}, err
	}
	return node, nil
}
