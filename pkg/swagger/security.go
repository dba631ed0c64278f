package swagger

import "sort"

// SecurityResolver computes the authentication headers an operation needs,
// from the document's security configuration and one caller-supplied token.
type SecurityResolver struct {
	token string
	doc   *Document
}

// NewSecurityResolver returns a resolver for doc. An empty token disables
// resolution entirely: no scheme is ever evaluated without one.
func NewSecurityResolver(token string, doc *Document) *SecurityResolver {
	return &SecurityResolver{token: token, doc: doc}
}

// Headers returns the header map to attach to requests for op.
//
// The effective requirement list is the operation's own when explicitly
// present (an explicit empty list means no auth), otherwise the document's
// global list. All requirement objects are applied in order and later
// objects overwrite earlier ones on header collision; this deliberately
// keeps the additive last-wins behavior rather than OpenAPI's "any one of"
// reading. Scheme keys within one object all contribute and are visited in
// sorted order so the result is deterministic.
func (r *SecurityResolver) Headers(op *Operation) map[string]string {
	headers := make(map[string]string)
	if r.token == "" {
		return headers
	}

	requirements := op.Security.Requirements
	if op.Security.Inherited() {
		requirements = r.doc.Security.Requirements
	}

	for _, req := range requirements {
		for k, v := range r.resolveRequirement(req) {
			headers[k] = v
		}
	}

	return headers
}

func (r *SecurityResolver) resolveRequirement(req SecurityRequirement) map[string]string {
	headers := make(map[string]string)

	schemes := make([]string, 0, len(req))
	for scheme := range req {
		schemes = append(schemes, scheme)
	}
	sort.Strings(schemes)

	for _, scheme := range schemes {
		// Fixed shortcut: a literal "Bearer" key needs no matching
		// definition.
		if scheme == "Bearer" {
			headers["Authorization"] = "Bearer " + r.token
			continue
		}

		def, ok := r.doc.SecurityDefinitions[scheme]
		if !ok {
			continue
		}
		if def.Type != "apiKey" || def.In != "header" {
			continue
		}

		name := def.Name
		if name == "" {
			name = "Authorization"
		}
		if name == "Authorization" {
			headers[name] = "Bearer " + r.token
		} else {
			headers[name] = r.token
		}
	}

	return headers
}
