package response

import (
	"github.com/danielgtaylor/huma/v2"
)

// NewConfig returns the Huma configuration shared by the server and handler tests.
// Response bodies are left exactly as the handlers produce them, without the
// $schema links Huma adds by default.
func NewConfig(title, version string) huma.Config {
	Install()

	config := huma.DefaultConfig(title, version)
	config.CreateHooks = nil
	config.Transformers = nil
	return config
}
