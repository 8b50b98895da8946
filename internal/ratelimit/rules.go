package ratelimit

import (
	"fmt"
	"slices"
	"time"

	"github.com/Proton-105/warung-bot/pkg/config"
)

// checkoutAction is the event action that creates orders.
const checkoutAction = "checkout"

// Scope is one limiter key with the rule that guards it.
type Scope struct {
	Name string
	Key  string
	Rule Rule
}

// Rules holds the parsed limiter configuration.
type Rules struct {
	enabled   bool
	global    *Rule
	perUser   *Rule
	checkout  *Rule
	whitelist []int64
}

// NewRules parses cfg. Rules with a zero limit are disabled; a positive
// limit needs a valid window.
func NewRules(cfg config.RateLimitConfig) (*Rules, error) {
	r := &Rules{enabled: cfg.Enabled, whitelist: slices.Clone(cfg.Whitelist)}

	var err error
	if r.global, err = parseRule("global", cfg.Global); err != nil {
		return nil, err
	}
	if r.perUser, err = parseRule("per_user", cfg.PerUser); err != nil {
		return nil, err
	}
	if r.checkout, err = parseRule("checkout", cfg.Checkout); err != nil {
		return nil, err
	}

	return r, nil
}

// Enabled reports whether any limiting should happen at all.
func (r *Rules) Enabled() bool {
	return r != nil && r.enabled
}

// IsWhitelisted returns true if the user bypasses rate limits.
func (r *Rules) IsWhitelisted(userID int64) bool {
	return slices.Contains(r.whitelist, userID)
}

// Scopes lists the limits that apply to one action by one user, broadest first.
func (r *Rules) Scopes(action string, userID int64) []Scope {
	if !r.Enabled() || r.IsWhitelisted(userID) {
		return nil
	}

	scopes := make([]Scope, 0, 3)
	if r.global != nil {
		scopes = append(scopes, Scope{Name: "global", Key: "global", Rule: *r.global})
	}
	if r.perUser != nil && userID != 0 {
		scopes = append(scopes, Scope{Name: "user", Key: fmt.Sprintf("user:%d", userID), Rule: *r.perUser})
	}
	if r.checkout != nil && userID != 0 && action == checkoutAction {
		scopes = append(scopes, Scope{Name: "checkout", Key: fmt.Sprintf("checkout:%d", userID), Rule: *r.checkout})
	}

	return scopes
}

func parseRule(name string, rule config.RateLimitRule) (*Rule, error) {
	if rule.Limit <= 0 {
		return nil, nil
	}
	if rule.Window == "" {
		return nil, fmt.Errorf("ratelimit %s: window is not set", name)
	}

	window, err := time.ParseDuration(rule.Window)
	if err != nil {
		return nil, fmt.Errorf("ratelimit %s: %w", name, err)
	}
	if window <= 0 {
		return nil, fmt.Errorf("ratelimit %s: window must be positive", name)
	}

	return &Rule{Limit: rule.Limit, Window: window}, nil
}
