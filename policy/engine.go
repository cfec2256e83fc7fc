// Package policy evaluates order requests against an OPA rego policy.
package policy

import (
	"context"
	"fmt"
	"sort"

	"github.com/open-policy-agent/opa/rego"

	"github.com/xiaot623/gogo/foodai/internal/domain"
)

// Decisions returned by the order policy.
const (
	DecisionAllow = "allow"
	DecisionBlock = "block"
)

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
// The module must live in package order_policy and define decision and reasons.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("decision = data.order_policy.decision; reasons = data.order_policy.reasons"),
		rego.Module("order_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate checks an order against the policy.
// Returns: decision (allow, block), the sorted reasons for a block, error
func (e *Engine) Evaluate(ctx context.Context, req *domain.OrderRequest) (string, []string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(orderInput(req)))
	if err != nil {
		return "", nil, fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 {
		// The policy defines a default decision, so this means it is broken.
		return "", nil, fmt.Errorf("order policy produced no result")
	}

	decision, ok := results[0].Bindings["decision"].(string)
	if !ok {
		return "", nil, fmt.Errorf("unexpected decision type %T", results[0].Bindings["decision"])
	}

	var reasons []string
	if raw, ok := results[0].Bindings["reasons"].([]interface{}); ok {
		for _, r := range raw {
			if s, ok := r.(string); ok {
				reasons = append(reasons, s)
			}
		}
	}
	sort.Strings(reasons)

	return decision, reasons, nil
}

func orderInput(req *domain.OrderRequest) map[string]interface{} {
	items := make([]interface{}, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, map[string]interface{}{
			"food_item_id": it.FoodItemID,
			"quantity":     it.Quantity,
			"price":        it.Price,
		})
	}
	return map[string]interface{}{
		"user_id": req.UserID,
		"items":   items,
	}
}

// DefaultPolicy is the default order policy content.
const DefaultPolicy = `
package order_policy

default decision = "allow"

decision = "block" {
	count(reasons) > 0
}

reasons[msg] {
	input.user_id == ""
	msg := "usuário não informado"
}

reasons[msg] {
	count(input.items) == 0
	msg := "o pedido não possui itens"
}

reasons[msg] {
	item := input.items[_]
	item.quantity <= 0
	msg := sprintf("quantidade inválida para o item %s", [item.food_item_id])
}

reasons[msg] {
	item := input.items[_]
	item.price < 0
	msg := sprintf("preço negativo para o item %s", [item.food_item_id])
}
`
