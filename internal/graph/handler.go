package graph

import (
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"
)

// request is the standard GraphQL POST body.
type request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// Handler returns the echo handler for POST /graphql. Resolver errors are
// reported in the response's errors list per the GraphQL convention; the
// HTTP status is 200 whenever the document could be executed.
func (s *Schema) Handler() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req request
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid graphql request")
		}

		result := graphql.Do(graphql.Params{
			Schema:         s.schema,
			RequestString:  req.Query,
			OperationName:  req.OperationName,
			VariableValues: req.Variables,
			Context:        c.Request().Context(),
		})

		return c.JSON(http.StatusOK, result)
	}
}

// Do executes a GraphQL document directly against the schema. Used by the
// resolver tests; the HTTP surface goes through Handler.
func (s *Schema) Do(params graphql.Params) *graphql.Result {
	params.Schema = s.schema
	return graphql.Do(params)
}
