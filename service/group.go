package service

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/vitalvas/uniresp/response"
)

// Group collects endpoints declared independently of a Service, under a
// shared path prefix, shared tags and shared default responses. Groups are
// combined into one route set and one document by Service.Mount:
//
//	users := service.NewGroup("/api/v1/users").Tags("users").Response(errresp.Response{})
//	service.Handle(users, http.MethodGet, "/{id}", proto, getUser)
//
//	orders := service.NewGroup("/api/v1/orders").Tags("orders")
//	service.Handle(orders, http.MethodGet, "/{id}", proto, getOrder)
//
//	err := svc.Mount(users, orders)
//
// Defaults only document: the responses sent are still those rendered by
// the handlers.
type Group struct {
	prefix     string
	tags       []string
	deprecated bool
	defaults   []response.TypedResponse

	ops []*operation
	mux *http.ServeMux
}

// NewGroup creates a group whose endpoint paths are joined to prefix.
func NewGroup(prefix string) *Group {
	return &Group{
		prefix: strings.TrimRight(prefix, "/"),
		mux:    http.NewServeMux(),
	}
}

// Tags appends tags to the group. Operations keep their own tags after the
// group ones.
func (g *Group) Tags(tags ...string) *Group {
	g.tags = append(g.tags, tags...)
	return g
}

// Deprecated marks every operation of the group as deprecated.
func (g *Group) Deprecated() *Group {
	g.deprecated = true
	return g
}

// Response adds default responses documented by every operation of the
// group. An operation response with the same status replaces the default,
// and among defaults the later one wins.
func (g *Group) Response(protos ...response.TypedResponse) *Group {
	g.defaults = append(g.defaults, protos...)
	return g
}

// addOperation records op. The path is relative to the prefix. Patterns conflicting within the group are
// rejected here; conflicts with other groups surface on Mount.
func (g *Group) addOperation(op *operation) error {
	if op.path != "" && !strings.HasPrefix(op.path, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidPath, op.path)
	}
	if g.prefix+op.path == "" {
		return fmt.Errorf("%w: empty path in a group without prefix", ErrInvalidPath)
	}

	if err := register(g.mux, op.method+" "+g.prefix+op.path, http.NotFoundHandler()); err != nil {
		return err
	}
	g.ops = append(g.ops, op)
	return nil
}

// resolve validates the defaults and returns the group operations with the
// prefix, tags and defaults applied.
func (g *Group) resolve() ([]*operation, error) {
	for _, d := range g.defaults {
		if err := response.Validate(d); err != nil {
			return nil, fmt.Errorf("group %s: %w", g.prefix, err)
		}
		if _, err := metaOf(d); err != nil {
			return nil, fmt.Errorf("group %s: %w", g.prefix, err)
		}
	}

	out := make([]*operation, 0, len(g.ops))
	for _, op := range g.ops {
		resolved := *op
		resolved.path = g.prefix + op.path
		resolved.info.Tags = append(slices.Clone(g.tags), op.info.Tags...)
		if g.deprecated {
			resolved.info.Deprecated = true
		}
		resolved.defaults = slices.Clone(g.defaults)
		out = append(out, &resolved)
	}

	return out, nil
}
