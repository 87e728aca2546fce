package routes

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"
)

// GroupName is the urlkit group every content route is registered under.
const GroupName = "site"

// SlugParam is the route parameter replaced by the document slug.
const SlugParam = "slug"

// Config describes the public URL layout.
type Config struct {
	BaseURL string
	// Paths maps a content kind to its route template.
	Paths map[string]string
}

// Resolver builds document permalinks using a go-urlkit RouteManager.
type Resolver struct {
	manager *urlkit.RouteManager
	routes  map[string]struct{}

	group   *urlkit.Group
	groupMu sync.Mutex
}

// NewResolver registers one route per kind. Kinds without a path have no
// permalink.
func NewResolver(cfg Config) *Resolver {
	paths := make(map[string]string, len(cfg.Paths))
	routes := make(map[string]struct{}, len(cfg.Paths))
	for kind, path := range cfg.Paths {
		kind = strings.TrimSpace(kind)
		path = strings.TrimSpace(path)
		if kind == "" || path == "" {
			continue
		}
		paths[kind] = path
		routes[kind] = struct{}{}
	}

	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    GroupName,
				BaseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
				Paths:   paths,
			},
		},
	})
	return &Resolver{
		manager: manager,
		routes:  routes,
	}
}

// Kinds lists the kinds that have a route, sorted.
func (r *Resolver) Kinds() []string {
	kinds := make([]string, 0, len(r.routes))
	for kind := range r.routes {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Permalink returns the public URL of kind/slug.
func (r *Resolver) Permalink(kind, slug string) (string, error) {
	if r == nil || r.manager == nil {
		return "", fmt.Errorf("routes: resolver not configured")
	}
	if _, ok := r.routes[kind]; !ok {
		return "", fmt.Errorf("routes: no route for kind %q", kind)
	}
	if strings.TrimSpace(slug) == "" {
		return "", fmt.Errorf("routes: empty slug for kind %q", kind)
	}

	group, err := r.siteGroup()
	if err != nil {
		return "", err
	}
	builder, err := safeBuilder(group, kind)
	if err != nil {
		return "", err
	}
	builder.WithParam(SlugParam, slug)
	return builder.Build()
}

func (r *Resolver) siteGroup() (*urlkit.Group, error) {
	r.groupMu.Lock()
	defer r.groupMu.Unlock()
	if r.group != nil {
		return r.group, nil
	}
	group, err := lookupGroup(r.manager, GroupName)
	if err != nil {
		return nil, err
	}
	r.group = group
	return group, nil
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			group, err = nil, fmt.Errorf("routes: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	if group == nil {
		return nil, fmt.Errorf("routes: route group %q not found", name)
	}
	return group, nil
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			builder, err = nil, fmt.Errorf("routes: urlkit builder panic: %v", rec)
		}
	}()
	return group.Builder(route), nil
}
