package config

// IProvider is the interface for loading configuration files
//
//go:generate mockery --name=IProvider --output=./mocks
type IProvider interface {
	ParseFile(path string, base Config) (Config, error)
}
