package swagger

// MergedParameters is the effective parameter set of one operation after
// path-level inheritance: the flat ordered list plus categorized views.
// Body is nil exactly when no body-location parameter exists.
type MergedParameters struct {
	All   []Parameter
	Path  map[string]Parameter
	Query map[string]Parameter
	Body  map[string]any
}

// Merge combines an operation's parameters with its path item's shared
// parameter list. Operation-level entries always shadow path-level ones with
// the same (name, location) key. When several body parameters survive the
// merge the last one wins; merged order is operation-level first, then
// non-shadowed path-level.
func Merge(op *Operation, pathLevel []Parameter) MergedParameters {
	seen := make(map[ParameterKey]struct{}, len(op.Parameters))
	merged := make([]Parameter, 0, len(op.Parameters)+len(pathLevel))

	for _, p := range op.Parameters {
		seen[p.Key()] = struct{}{}
		merged = append(merged, p)
	}
	for _, p := range pathLevel {
		if _, ok := seen[p.Key()]; ok {
			continue
		}
		merged = append(merged, p)
	}

	out := MergedParameters{
		All:   merged,
		Path:  make(map[string]Parameter),
		Query: make(map[string]Parameter),
	}

	for _, p := range merged {
		switch p.In {
		case "path":
			out.Path[p.Name] = p
		case "query":
			out.Query[p.Name] = p
		case "body":
			if p.Schema != nil {
				out.Body = p.Schema
			} else {
				out.Body = map[string]any{}
			}
		}
	}

	return out
}
