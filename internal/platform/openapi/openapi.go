// Package openapi serves an OpenAPI 3.0 description of the API and a
// Swagger UI page for it.
package openapi

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// Operation describes one route for the generated document.
type Operation struct {
	Method  string
	Path    string // echo syntax, e.g. /patients/:id
	Summary string
	Tag     string
	// Roles lists the roles allowed to call the route. Nil means public and
	// an empty non-nil slice means any authenticated caller.
	Roles    []string
	Request  interface{} // zero value of the JSON request body, if any
	Form     interface{} // zero value of a form-encoded request body
	Response interface{} // zero value of the success body
	List     bool        // response is an array of Response
	Status   int         // success status; defaults to 200
}

// Generator builds an OpenAPI 3.0 spec from registered operations.
type Generator struct {
	title   string
	version string
	baseURL string
	ops     []Operation
}

// NewGenerator creates a new OpenAPI spec generator.
func NewGenerator(title, version, baseURL string) *Generator {
	return &Generator{title: title, version: version, baseURL: baseURL}
}

// Add registers operations. A later operation with the same method and path
// replaces an earlier one in the generated document.
func (g *Generator) Add(ops ...Operation) {
	g.ops = append(g.ops, ops...)
}

// GenerateSpec produces the OpenAPI 3.0 spec as a map.
func (g *Generator) GenerateSpec() map[string]interface{} {
	paths := make(map[string]interface{})
	schemas := newSchemaSet()

	for _, op := range g.ops {
		path := openAPIPath(op.Path)
		item, ok := paths[path].(map[string]interface{})
		if !ok {
			item = make(map[string]interface{})
			paths[path] = item
		}
		item[strings.ToLower(op.Method)] = g.buildOperation(op, schemas)
	}

	spec := map[string]interface{}{
		"openapi": "3.0.3",
		"info": map[string]interface{}{
			"title":   g.title,
			"version": g.version,
		},
		"servers": []map[string]string{
			{"url": g.baseURL},
		},
		"paths": paths,
		"components": map[string]interface{}{
			"schemas": schemas.components(),
			"securitySchemes": map[string]interface{}{
				"bearerAuth": map[string]interface{}{
					"type":         "http",
					"scheme":       "bearer",
					"bearerFormat": "JWT",
				},
			},
		},
	}
	return spec
}

func (g *Generator) buildOperation(op Operation, schemas *schemaSet) map[string]interface{} {
	out := map[string]interface{}{
		"summary":     op.Summary,
		"operationId": operationID(op),
	}
	if op.Tag != "" {
		out["tags"] = []string{op.Tag}
	}

	params := pathParameters(op.Path)
	if op.List {
		params = append(params, paginationParameters()...)
	}
	if len(params) > 0 {
		out["parameters"] = params
	}

	switch {
	case op.Request != nil:
		out["requestBody"] = requestBody(echo.MIMEApplicationJSON, schemas.ref(op.Request))
	case op.Form != nil:
		out["requestBody"] = requestBody(echo.MIMEApplicationForm, schemas.ref(op.Form))
	}

	status := op.Status
	if status == 0 {
		status = http.StatusOK
	}
	responses := map[string]interface{}{}
	success := map[string]interface{}{"description": http.StatusText(status)}
	if op.Response != nil {
		var schema map[string]interface{}
		if op.List {
			schema = map[string]interface{}{"type": "array", "items": schemas.ref(op.Response)}
		} else {
			schema = schemas.ref(op.Response)
		}
		success["content"] = map[string]interface{}{
			echo.MIMEApplicationJSON: map[string]interface{}{"schema": schema},
		}
	}
	responses[strconv.Itoa(status)] = success

	if op.Request != nil || op.Form != nil {
		responses["400"] = errorResponse("Invalid input")
	}
	if op.Roles != nil {
		out["security"] = []map[string][]string{{"bearerAuth": {}}}
		responses["401"] = errorResponse("Missing or invalid bearer token")
		if len(op.Roles) > 0 {
			out["description"] = "Allowed roles: " + strings.Join(op.Roles, ", ")
			responses["403"] = errorResponse("Role not permitted")
		}
	}
	if strings.Contains(op.Path, ":id") {
		responses["404"] = errorResponse("Not found")
	}
	out["responses"] = responses
	return out
}

// openAPIPath converts echo path params (:id) to OpenAPI templates ({id}).
func openAPIPath(p string) string {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		if strings.HasPrefix(s, ":") {
			segs[i] = "{" + s[1:] + "}"
		}
	}
	return strings.Join(segs, "/")
}

func pathParameters(p string) []map[string]interface{} {
	var params []map[string]interface{}
	for _, s := range strings.Split(p, "/") {
		if strings.HasPrefix(s, ":") {
			params = append(params, map[string]interface{}{
				"name": s[1:], "in": "path", "required": true,
				"schema": map[string]string{"type": "string", "format": "uuid"},
			})
		}
	}
	return params
}

func paginationParameters() []map[string]interface{} {
	return []map[string]interface{}{
		{"name": "limit", "in": "query", "schema": map[string]string{"type": "integer"}},
		{"name": "offset", "in": "query", "schema": map[string]string{"type": "integer"}},
	}
}

func operationID(op Operation) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(op.Method))
	for _, s := range strings.FieldsFunc(op.Path, func(r rune) bool { return r == '/' || r == '-' || r == '_' }) {
		if strings.HasPrefix(s, ":") {
			s = "by" + upperFirst(s[1:])
		}
		b.WriteString(upperFirst(s))
	}
	return b.String()
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func requestBody(mime string, schema map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"required": true,
		"content": map[string]interface{}{
			mime: map[string]interface{}{"schema": schema},
		},
	}
}

func errorResponse(description string) map[string]interface{} {
	return map[string]interface{}{
		"description": description,
		"content": map[string]interface{}{
			echo.MIMEApplicationJSON: map[string]interface{}{
				"schema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{"message": map[string]string{"type": "string"}},
				},
			},
		},
	}
}

// Paths returns the documented paths in sorted order.
func (g *Generator) Paths() []string {
	seen := map[string]bool{}
	var out []string
	for _, op := range g.ops {
		p := openAPIPath(op.Path)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// ── Swagger UI ──────────────────────────────────────────────────────────

const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Liver Cirrhosis API - Swagger UI</title>
  <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" >
  <style>
    html { box-sizing: border-box; overflow-y: scroll; }
    *, *:before, *:after { box-sizing: inherit; }
    body { margin: 0; background: #fafafa; }
  </style>
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: "/openapi.json",
      dom_id: '#swagger-ui',
      deepLinking: true,
      presets: [
        SwaggerUIBundle.presets.apis,
        SwaggerUIBundle.SwaggerUIStandalonePreset
      ],
      layout: "BaseLayout"
    })
  </script>
</body>
</html>`

// RegisterRoutes registers the OpenAPI endpoints.
func (g *Generator) RegisterRoutes(e *echo.Echo) {
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSON(http.StatusOK, g.GenerateSpec())
	})
	e.GET("/docs", func(c echo.Context) error {
		return c.HTML(http.StatusOK, swaggerUIHTML)
	})
}
