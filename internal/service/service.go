// Package service implements the FoodAI use cases on top of the store,
// the session memory and the completion invoker.
package service

import (
	"github.com/xiaot623/gogo/foodai/internal/completion"
	"github.com/xiaot623/gogo/foodai/internal/history"
	"github.com/xiaot623/gogo/foodai/internal/prompt"
	"github.com/xiaot623/gogo/foodai/internal/repository"
	"github.com/xiaot623/gogo/foodai/policy"
)

type Service struct {
	store        repository.Store
	history      history.Store
	assembler    *prompt.Assembler
	invoker      *completion.Invoker
	policyEngine *policy.Engine
}

func New(store repository.Store, hist history.Store, invoker *completion.Invoker, policyEngine *policy.Engine) *Service {
	return &Service{
		store:        store,
		history:      hist,
		assembler:    prompt.NewAssembler(""),
		invoker:      invoker,
		policyEngine: policyEngine,
	}
}
