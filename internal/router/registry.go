package router

import "github.com/gin-gonic/gin"

// DefaultPrefix is where the portal API is mounted.
const DefaultPrefix = "/api"

// Registry collects route modules and group middleware and mounts them
// under one prefix in a single pass.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

// NewRegistry mounts at DefaultPrefix unless a prefix is given.
func NewRegistry(engine *gin.Engine, prefix ...string) *Registry {
	p := DefaultPrefix
	if len(prefix) > 0 && prefix[0] != "" {
		p = prefix[0]
	}
	return &Registry{Engine: engine, API: engine.Group(p)}
}

// Use adds middleware that runs for every module route.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// RegisterAll must be called once, after every Use and Add.
func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
}
