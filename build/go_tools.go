//go:build tools

// This file exists only to declare dependencies on Go-based executables
// used in linting, generating mocks, etc.
// The versions are declared in the nearby go.mod file.

package hack

import (
	_ "github.com/client9/misspell/cmd/misspell"
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "go.uber.org/mock/mockgen"
	_ "golang.org/x/lint/golint"
	_ "golang.org/x/tools/cmd/goimports"
)
