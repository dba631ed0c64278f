package swagger

import (
	"fmt"
	"strings"
)

// Describe builds the human description for the tool compiled from an
// operation: summary and description when present, plus parameter and
// success-response documentation derived from the merged parameter list.
func Describe(op *Operation, method, path string, params []Parameter) string {
	var b strings.Builder

	switch {
	case op.Summary != "" && op.Description != "":
		b.WriteString(op.Summary)
		b.WriteString("\n\n")
		b.WriteString(op.Description)
	case op.Summary != "":
		b.WriteString(op.Summary)
	case op.Description != "":
		b.WriteString(op.Description)
	default:
		fmt.Fprintf(&b, "Execute %s request to %s", strings.ToUpper(method), path)
	}

	if len(params) > 0 {
		b.WriteString("\n\nParameters:")
		for _, p := range params {
			requirement := " (optional)"
			if p.Required {
				requirement = " (required)"
			}
			fmt.Fprintf(&b, "\n- %s: %s [%s in %s]%s", p.Name, p.Description, p.Type, p.In, requirement)
		}
	}

	if resp, ok := successResponse(op); ok && resp.Description != "" {
		fmt.Fprintf(&b, "\n\nReturns: %s", resp.Description)
	}

	return b.String()
}

func successResponse(op *Operation) (Response, bool) {
	for _, code := range []string{"200", "201"} {
		if resp, ok := op.Responses[code]; ok {
			return resp, true
		}
	}
	return Response{}, false
}
