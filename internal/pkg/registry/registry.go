package registry

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ModuleContext carries the shared resources every module initializes from.
type ModuleContext struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Router *gin.Engine

	// Services shared across modules, published by the owning module during
	// Init and consumed by later (higher-priority-number) modules.
	Shared map[string]interface{}
}

// Module is a self-contained domain: it wires its own repositories, services
// and routes during Init.
type Module interface {
	Name() string

	// Init performs dependency injection and route registration.
	Init(ctx *ModuleContext) error

	// Priority orders initialization; lower runs first. Modules that publish
	// shared services must run before their consumers.
	Priority() int
}

var moduleRegistry = make(map[string]Module)

// Register adds a module; called from each module's init().
func Register(module Module) {
	moduleRegistry[module.Name()] = module
}

// GetModules returns all registered modules.
func GetModules() map[string]Module {
	return moduleRegistry
}

// InitModules initializes every registered module in priority order.
func InitModules(ctx *ModuleContext) error {
	if ctx.Shared == nil {
		ctx.Shared = make(map[string]interface{})
	}

	modules := make([]Module, 0, len(moduleRegistry))
	for _, m := range moduleRegistry {
		modules = append(modules, m)
	}

	for i := 0; i < len(modules); i++ {
		for j := i + 1; j < len(modules); j++ {
			if modules[i].Priority() > modules[j].Priority() {
				modules[i], modules[j] = modules[j], modules[i]
			}
		}
	}

	for _, module := range modules {
		if err := module.Init(ctx); err != nil {
			return err
		}
	}
	return nil
}
