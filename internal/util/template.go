package util

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"text/template/parse"
)

var templateFuncs = template.FuncMap{
	"default": func(defaultVal any, val any) any {
		if val == nil || val == "" {
			return defaultVal
		}
		return val
	},
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
	"join": func(sep string, items []any) string {
		strItems := make([]string, len(items))
		for i, item := range items {
			strItems[i] = fmt.Sprintf("%v", item)
		}
		return strings.Join(strItems, sep)
	},
}

// Template is a parsed instruction template.
type Template struct {
	tmpl *template.Template
	keys []string
}

// ParseTemplate parses text as a text/template referencing context variables
// with {{.key}}.
func ParseTemplate(text string) (*Template, error) {
	tmpl, err := template.New("instructions").Funcs(templateFuncs).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse instructions template: %w", err)
	}

	seen := map[string]bool{}
	var keys []string
	if tmpl.Tree != nil {
		collectKeys(tmpl.Tree.Root, func(key string) {
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		})
	}

	return &Template{tmpl: tmpl, keys: keys}, nil
}

// Execute renders the template against vars. Top-level keys referenced by the
// template but absent from vars render as empty strings.
func (t *Template) Execute(vars map[string]any) (string, error) {
	data := make(map[string]any, len(vars)+len(t.keys))
	for _, k := range t.keys {
		data[k] = ""
	}
	for k, v := range vars {
		data[k] = v
	}

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render instructions template: %w", err)
	}

	return buf.String(), nil
}

func collectKeys(node parse.Node, add func(string)) {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, c := range n.Nodes {
			collectKeys(c, add)
		}
	case *parse.ActionNode:
		collectKeys(n.Pipe, add)
	case *parse.PipeNode:
		if n == nil {
			return
		}
		for _, c := range n.Cmds {
			collectKeys(c, add)
		}
	case *parse.CommandNode:
		for _, a := range n.Args {
			collectKeys(a, add)
		}
	case *parse.FieldNode:
		if len(n.Ident) == 1 {
			add(n.Ident[0])
		}
	case *parse.ChainNode:
		collectKeys(n.Node, add)
	case *parse.IfNode:
		collectBranch(&n.BranchNode, add)
	case *parse.RangeNode:
		collectBranch(&n.BranchNode, add)
	case *parse.WithNode:
		collectBranch(&n.BranchNode, add)
	case *parse.TemplateNode:
		collectKeys(n.Pipe, add)
	}
}

// Fields inside range and with bodies are relative to the new dot, so only the
// branch pipeline and the if/else lists are scanned for top-level keys.
func collectBranch(b *parse.BranchNode, add func(string)) {
	collectKeys(b.Pipe, add)
	if b.NodeType == parse.NodeIf {
		collectKeys(b.List, add)
	}
	collectKeys(b.ElseList, add)
}
