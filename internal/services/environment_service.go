package services

import (
	"fmt"

	shellcontext "datashell/internal/context"
	"datashell/pkg/shelltypes"
)

// EnvironmentService hands out the shared environment stack of the global context.
type EnvironmentService struct {
	initialized bool
	env         shellcontext.EnvironmentSubcontext
}

// NewEnvironmentService creates a new environment service instance.
func NewEnvironmentService() *EnvironmentService {
	return &EnvironmentService{}
}

// Name returns the service name for registry
func (es *EnvironmentService) Name() string {
	return "environment"
}

// Initialize binds the service to the global context's environment.
func (es *EnvironmentService) Initialize() error {
	es.env = shellcontext.NewEnvironmentSubcontextFromContext(shellcontext.GetGlobalContext())
	es.initialized = true
	return nil
}

// Environment returns the shared environment handle.
func (es *EnvironmentService) Environment() (shelltypes.Environment, error) {
	if !es.initialized {
		return nil, fmt.Errorf("environment service not initialized")
	}
	return es.env, nil
}

// Enter pushes a value frame entered from source.
func (es *EnvironmentService) Enter(value shelltypes.Value, source string) error {
	if !es.initialized {
		return fmt.Errorf("environment service not initialized")
	}
	cwd, err := es.env.CurrentPath()
	if err != nil {
		return err
	}
	es.env.Push(shellcontext.NewValueFrame(value, source, cwd))
	return nil
}

// Leave pops the innermost frame. It returns false at the root frame.
func (es *EnvironmentService) Leave() (shelltypes.Frame, bool) {
	if !es.initialized {
		return nil, false
	}
	return es.env.Pop()
}

// GetGlobalEnvironmentService returns the environment service from the global registry.
func GetGlobalEnvironmentService() (*EnvironmentService, error) {
	return getGlobalService[*EnvironmentService]("environment")
}
