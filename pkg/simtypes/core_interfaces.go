package simtypes

// Service defines the interface for PromptSim services.
// Services are registered by name and initialized once at startup.
type Service interface {
	Name() string
	Initialize() error
}
