// Package graphql exposes the check-in API over a single GraphQL endpoint.
//
// Every type, field, and argument carries a description; the schema is the
// API's reference documentation, browsable through introspection.
package graphql

import (
	"github.com/graphql-go/graphql"
)

// NewSchema builds the executable schema around the given resolver.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name:        "User",
		Description: "A person identified by email who can check in to events.",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.ID),
				Description: "Stable unique identifier for the user.",
			},
			"name": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.String),
				Description: "Display name, derived from the email local part when the account was created on the fly.",
			},
			"email": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.String),
				Description: "Email address the user is identified by. Unique across all users.",
			},
		},
	})

	eventType := graphql.NewObject(graphql.ObjectConfig{
		Name:        "Event",
		Description: "An event people can check in to and out of in real time.",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.ID),
				Description: "Stable unique identifier for the event.",
			},
			"name": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.String),
				Description: "Human-readable event name.",
			},
			"location": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.String),
				Description: "Where the event takes place.",
			},
			"startTime": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.DateTime),
				Description: "When the event starts, as an RFC 3339 timestamp.",
			},
			"attendees": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
				Description: "Users currently checked in, ordered by name. Empty when nobody has checked in.",
			},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name:        "Query",
		Description: "Read access to events and the calling user.",
		Fields: graphql.Fields{
			"events": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(eventType))),
				Description: "All events ascending by start time, each with its current attendee list.",
				Resolve:     r.resolveEvents,
			},
			"me": &graphql.Field{
				Type:        graphql.NewNonNull(userType),
				Description: "The user for the given email, created on first sight.",
				Args: graphql.FieldConfigArgument{
					"email": &graphql.ArgumentConfig{
						Type:        graphql.NewNonNull(graphql.String),
						Description: "Email identifying the caller. Must contain an @ sign.",
					},
				},
				Resolve: r.resolveMe,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name:        "Mutation",
		Description: "Membership transitions. Both mutations are idempotent: repeating one changes nothing and still succeeds.",
		Fields: graphql.Fields{
			"joinEvent": &graphql.Field{
				Type:        graphql.NewNonNull(eventType),
				Description: "Check the user with the given email in to the event, creating the user on the fly if needed. Returns the event with its updated attendee list.",
				Args: graphql.FieldConfigArgument{
					"eventId": &graphql.ArgumentConfig{
						Type:        graphql.NewNonNull(graphql.ID),
						Description: "ID of the event to join.",
					},
					"userEmail": &graphql.ArgumentConfig{
						Type:        graphql.NewNonNull(graphql.String),
						Description: "Email of the joining user. Any non-empty string is accepted.",
					},
				},
				Resolve: r.resolveJoinEvent,
			},
			"leaveEvent": &graphql.Field{
				Type:        graphql.NewNonNull(eventType),
				Description: "Check the user with the given email out of the event. Fails if no user exists for the email; never creates one. Returns the event with its updated attendee list.",
				Args: graphql.FieldConfigArgument{
					"eventId": &graphql.ArgumentConfig{
						Type:        graphql.NewNonNull(graphql.ID),
						Description: "ID of the event to leave.",
					},
					"userEmail": &graphql.ArgumentConfig{
						Type:        graphql.NewNonNull(graphql.String),
						Description: "Email of the leaving user. Must belong to an existing user.",
					},
				},
				Resolve: r.resolveLeaveEvent,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}
