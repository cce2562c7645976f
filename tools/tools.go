//go:build tools

// Package tools pins the code generators behind the go:generate lines:
// enumer for the enum string tables and mockgen for the interface mocks.
package tools

import (
	_ "github.com/dmarkham/enumer"
	_ "go.uber.org/mock/mockgen"
)
