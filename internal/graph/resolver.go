package graph

import (
	"errors"

	"account-service/internal/logger"
	"account-service/internal/transport"
	"account-service/internal/user"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

var inputValidator = transport.NewValidator()

// publicError hides store failures behind the same messages the REST
// endpoints use.
func publicError(err error) error {
	_, msg := transport.ErrorResponse(err)
	return errors.New(msg)
}

func userToMap(v user.UserView) map[string]interface{} {
	return map[string]interface{}{
		"id":          v.ID,
		"fullName":    v.FullName,
		"email":       v.Email,
		"phoneNumber": v.PhoneNumber,
		"country":     v.Country,
		"roleId":      v.RoleID,
		"roleName":    v.RoleName,
	}
}

func stringArg(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func (r *Resolver) users(p graphql.ResolveParams) (interface{}, error) {
	users, err := r.UserSvc.ListUsers(p.Context)
	if err != nil {
		return nil, publicError(err)
	}

	out := make([]map[string]interface{}, 0, len(users))
	for _, u := range users {
		out = append(out, userToMap(u))
	}
	return out, nil
}

func (r *Resolver) roles(p graphql.ResolveParams) (interface{}, error) {
	roles, err := r.Roles.List(p.Context)
	if err != nil {
		logger.FromCtx(p.Context).Error("graphql: failed to list roles", zap.Error(err))
		return nil, publicError(err)
	}

	out := make([]map[string]interface{}, 0, len(roles))
	for _, rl := range roles {
		out = append(out, map[string]interface{}{"id": rl.ID, "name": rl.Name})
	}
	return out, nil
}

func (r *Resolver) signup(p graphql.ResolveParams) (interface{}, error) {
	input, _ := p.Args["input"].(map[string]interface{})

	req := transport.SignupRequest{
		FullName:        stringArg(input, "fullName"),
		Email:           stringArg(input, "email"),
		Password:        stringArg(input, "password"),
		ConfirmPassword: stringArg(input, "confirmPassword"),
		PhoneNumber:     stringArg(input, "phoneNumber"),
		Country:         stringArg(input, "country"),
	}
	if name := stringArg(input, "role"); name != "" {
		req.Role = &name
	}
	if err := req.Validate(inputValidator); err != nil {
		return nil, err
	}

	if _, err := r.UserSvc.Signup(p.Context, req.ToInput()); err != nil {
		return nil, publicError(err)
	}

	return map[string]interface{}{"message": "signup successful"}, nil
}

func (r *Resolver) login(p graphql.ResolveParams) (interface{}, error) {
	_, err := r.UserSvc.Login(p.Context, stringArg(p.Args, "email"), stringArg(p.Args, "password"))
	if err != nil {
		return nil, publicError(err)
	}

	return map[string]interface{}{"message": "login successful"}, nil
}
