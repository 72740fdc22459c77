package extract

const (
	internalToolsVar = "internal_tools"
	externalToolsVar = "external_tools"
)

// Tools lists the tools a model proposed for a project
type Tools struct {
	Internal []string `json:"internal_tools"`
	External []string `json:"external_tools"`
}

// Empty reports whether no tools were found
func (t Tools) Empty() bool {
	return len(t.Internal) == 0 && len(t.External) == 0
}

func noTools() Tools {
	return Tools{Internal: []string{}, External: []string{}}
}

// ToolDiscovery reads a fenced block assigning internal_tools and external_tools.
// The block is parsed, never executed: only string-list literals are accepted.
// Anything else, or a missing variable, yields two empty lists.
func ToolDiscovery(text string) Tools {
	vars, err := parseAssignments(StripFences(text))
	if err != nil {
		return noTools()
	}

	internal, ok := stringList(vars[internalToolsVar])
	if !ok {
		return noTools()
	}
	external, ok := stringList(vars[externalToolsVar])
	if !ok {
		return noTools()
	}
	return Tools{Internal: internal, External: external}
}

func stringList(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
