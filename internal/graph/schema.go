package graph

import (
	"account-service/internal/role"
	"account-service/internal/user"

	"github.com/graphql-go/graphql"
)

type Resolver struct {
	UserSvc user.Service
	Roles   role.Repository
}

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"fullName":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"email":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"phoneNumber": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"country":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"roleId":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"roleName":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var roleType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Role",
	Fields: graphql.Fields{
		"id":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var messageType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MessageResponse",
	Fields: graphql.Fields{
		"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var signupInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "SignupInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"fullName":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"email":           &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"password":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"confirmPassword": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"phoneNumber":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"country":         &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"role":            &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

// NewSchema builds the executable schema over the account services.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"users": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
				Resolve: r.users,
			},
			"roles": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(roleType))),
				Resolve: r.roles,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"signup": &graphql.Field{
				Type: graphql.NewNonNull(messageType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(signupInputType)},
				},
				Resolve: r.signup,
			},
			"login": &graphql.Field{
				Type: graphql.NewNonNull(messageType),
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.login,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
