// Package observers wires model, tool and prompt lifecycle logging into the
// Eino callback system.
package observers

import (
	"sync"

	einocb "github.com/cloudwego/eino/callbacks"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"
)

var installOnce sync.Once

// Install registers the observer handlers globally so every component call
// in the process is logged. Safe to call more than once.
func Install() {
	installOnce.Do(func() {
		einocb.AppendGlobalHandlers(NewAllCallbacks())
	})
}

// NewAllCallbacks aggregates all observer handlers into one callbacks.Handler.
func NewAllCallbacks() einocb.Handler {
	return callbackHelper.NewHandlerHelper().
		Tool(newToolHandler()).
		ChatModel(newModelHandler()).
		Prompt(newPromptHandler()).
		Handler()
}
