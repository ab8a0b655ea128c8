// Package dienv provides the application environment name as a convenience
// singleton.
package dienv

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	di "github.com/sectrean/provider-kit"
)

// Well-known environment names.
const (
	Development = "development"
	Testing     = "testing"
	Production  = "production"
)

// EnvVar is the process environment variable holding the environment name.
const EnvVar = "APP_ENV"

// Environment is a value object naming the running environment.
type Environment struct {
	Name string
}

func (e Environment) IsDevelopment() bool {
	return strings.EqualFold(e.Name, Development)
}

func (e Environment) IsTesting() bool {
	return strings.EqualFold(e.Name, Testing)
}

func (e Environment) IsProduction() bool {
	return strings.EqualFold(e.Name, Production)
}

func (e Environment) String() string {
	return e.Name
}

// Detect loads .env files, if any, and returns the environment named by
// APP_ENV. Defaults to [Development] when the variable is unset.
func Detect(dotenvFiles ...string) Environment {
	// Missing .env files are not an error: the process environment wins.
	_ = godotenv.Load(dotenvFiles...)

	name := os.Getenv(EnvVar)
	if name == "" {
		name = Development
	}

	return Environment{Name: name}
}

// Register adds env to the collection as a singleton value.
func Register(c *di.Collection, env Environment) {
	di.AddValue(c, env)
}
