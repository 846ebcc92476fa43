package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/saferoute/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	// Location embeds GeoPoint, which the default resolver does not flatten.
	locationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Location",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(domain.Location).Lat, nil
			}},
			"lon": &graphql.Field{Type: graphql.Float, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(domain.Location).Lon, nil
			}},
			"name": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(domain.Location).Name, nil
			}},
		},
	})

	safetyLevelType := graphql.NewObject(graphql.ObjectConfig{
		Name: "SafetyLevel",
		Fields: graphql.Fields{
			"label": &graphql.Field{Type: graphql.String},
			"color": &graphql.Field{Type: graphql.String},
		},
	})

	routeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ScoredRoute",
		Fields: graphql.Fields{
			"id":             &graphql.Field{Type: graphql.String},
			"name":           &graphql.Field{Type: graphql.String},
			"profile":        &graphql.Field{Type: graphql.String},
			"coordinates":    &graphql.Field{Type: graphql.NewList(geoPointType)},
			"total_distance": &graphql.Field{Type: graphql.Float},
			"estimated_time": &graphql.Field{Type: graphql.Int},
			"safety_score":   &graphql.Field{Type: graphql.Int},
			"safety_level":   &graphql.Field{Type: safetyLevelType},
		},
	})

	planType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RoutePlan",
		Fields: graphql.Fields{
			"origin":      &graphql.Field{Type: locationType},
			"destination": &graphql.Field{Type: locationType},
			"routes":      &graphql.Field{Type: graphql.NewList(routeType)},
			"recommended": &graphql.Field{Type: routeType},
		},
	})

	zoneType := graphql.NewObject(graphql.ObjectConfig{
		Name: "SafetyZone",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.String},
			"center":       &graphql.Field{Type: geoPointType},
			"safety_score": &graphql.Field{Type: graphql.Int},
			"radius":       &graphql.Field{Type: graphql.Float},
			"factors": &graphql.Field{Type: graphql.NewObject(graphql.ObjectConfig{
				Name: "ZoneFactors",
				Fields: graphql.Fields{
					"crime_rate":         &graphql.Field{Type: graphql.Int},
					"street_lighting":    &graphql.Field{Type: graphql.Int},
					"pedestrian_traffic": &graphql.Field{Type: graphql.Int},
					"sidewalk_quality":   &graphql.Field{Type: graphql.Int},
				},
			})},
		},
	})

	placeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Place",
		Fields: graphql.Fields{
			"place_id":     &graphql.Field{Type: graphql.String},
			"display_name": &graphql.Field{Type: graphql.String},
			"location":     &graphql.Field{Type: geoPointType},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"safeRoutes": &graphql.Field{
				Type:        planType,
				Description: "Routes between two points, safest first",
				Args: graphql.FieldConfigArgument{
					"from_lat":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"from_lon":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"to_lat":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"to_lon":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"from_name": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"to_name":   &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					from := domain.GeoPoint{Lat: p.Args["from_lat"].(float64), Lon: p.Args["from_lon"].(float64)}
					to := domain.GeoPoint{Lat: p.Args["to_lat"].(float64), Lon: p.Args["to_lon"].(float64)}
					fromName, _ := p.Args["from_name"].(string)
					toName, _ := p.Args["to_name"].(string)
					return deps.SafeRoutes.Plan(p.Context,
						domain.Location{GeoPoint: from, Name: pointName(fromName, from)},
						domain.Location{GeoPoint: to, Name: pointName(toName, to)},
					)
				},
			},
			"safetyZones": &graphql.Field{
				Type:        graphql.NewList(zoneType),
				Description: "Safety zone overlays around a map centre",
				Args: graphql.FieldConfigArgument{
					"lat":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lon":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"count": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					center := domain.GeoPoint{Lat: p.Args["lat"].(float64), Lon: p.Args["lon"].(float64)}
					return deps.Zones.Around(center, p.Args["count"].(int))
				},
			},
			"geocode": &graphql.Field{
				Type:        graphql.NewList(placeType),
				Description: "Search places by address",
				Args: graphql.FieldConfigArgument{
					"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Geocode.Search(p.Context, p.Args["query"].(string))
				},
			},
			"reverseGeocode": &graphql.Field{
				Type:        graphql.String,
				Description: "Name the place at a coordinate",
				Args: graphql.FieldConfigArgument{
					"lat": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lon": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Geocode.Reverse(p.Context, domain.GeoPoint{
						Lat: p.Args["lat"].(float64),
						Lon: p.Args["lon"].(float64),
					})
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
