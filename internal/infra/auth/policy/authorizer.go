// Package policy is the rego-backed variant of the authorization decision.
// It evaluates the same exact-authority rule as the static rbac authorizer,
// but from an embedded policy module, so deployments that manage access
// rules as policy can swap it in via AUTHZ_MODE=policy.
package policy

import (
	"context"
	"errors"
	"fmt"

	"chronicle/internal/domain"
	"chronicle/internal/infra/auth/rbac"

	"github.com/open-policy-agent/opa/rego"
)

const defaultQuery = "data.chronicle.authz.allow"

const authzModule = `package chronicle.authz

import rego.v1

default allow := false

allow if input.authority == ""

allow if input.authority in input.authorities
`

type Authorizer struct {
	query rego.PreparedEvalQuery
}

func NewAuthorizer() (*Authorizer, error) {
	prepared, err := rego.New(
		rego.Query(defaultQuery),
		rego.Module("authz.rego", authzModule),
	).PrepareForEval(context.Background())
	if err != nil {
		return nil, fmt.Errorf("prepare authz policy: %w", err)
	}
	return &Authorizer{query: prepared}, nil
}

// Require mirrors rbac.Authorizer.Require. Evaluation is in-process and
// CPU-bound; no I/O happens per decision.
func (a *Authorizer) Require(principal domain.Principal, authority string) error {
	if principal.Subject == "" {
		return domain.ErrUnauthorized
	}
	input := map[string]any{
		"subject":     principal.Subject,
		"authority":   authority,
		"authorities": principal.Authorities,
	}
	results, err := a.query.Eval(context.Background(), rego.EvalInput(input))
	if err != nil {
		return fmt.Errorf("evaluate authz policy: %w", err)
	}
	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return errors.New("empty authz policy result")
	}
	allowed, ok := results[0].Expressions[0].Value.(bool)
	if !ok || !allowed {
		return &rbac.AuthzError{Code: rbac.MissingCode(authority), Err: domain.ErrForbidden}
	}
	return nil
}
