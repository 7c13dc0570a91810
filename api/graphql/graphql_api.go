package graphql

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/api"
	"github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/graphqlserver"
)

func init() {
	api.RegisterRoute(RegisterGraphQLRoutes)
}

// RegisterGraphQLRoutes mounts the read-only /graphql endpoint on the root
// (public, listed in the auth skipper).
func RegisterGraphQLRoutes(e *echo.Echo, db *gorm.DB) {
	schema, err := graphqlserver.NewSchema(db)
	if err != nil {
		panic("graphql schema: " + err.Error())
	}
	handler := graphqlserver.Handler(schema)
	e.POST("/graphql", echo.WrapHandler(handler))
	e.GET("/graphql", echo.WrapHandler(handler))
}
