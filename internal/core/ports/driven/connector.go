package driven

import "context"

// Connector enumerates candidate files under one root directory.
type Connector interface {
	// Root returns the directory being enumerated.
	Root() string

	// Walk calls fn with the absolute path of every supported regular file.
	// An error from fn stops the walk and is returned.
	Walk(ctx context.Context, fn func(path string) error) error

	// Close releases any resources held by the connector.
	Close() error
}

// ConnectorFactory builds a Connector for root that only yields files
// accepted by supports.
type ConnectorFactory func(root string, supports func(path string) bool) Connector
