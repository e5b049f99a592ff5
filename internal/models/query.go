package models

import (
	"time"

	"github.com/google/uuid"
)

// Query definition status tags.
const (
	QueryStatusActive  = "active"
	QueryStatusBeta    = "beta"
	QueryStatusPending = "pending"
)

// Execution outcome constants.
const (
	OutcomeSuccess     = "success"
	OutcomePlaceholder = "placeholder"
	OutcomeInvalid     = "invalid"
	OutcomeNotFound    = "not_found"
	OutcomeError       = "error"
)

// QueryConfig holds the options recognized by aggregators.
type QueryConfig struct {
	Limit    int    `json:"limit,omitempty" yaml:"limit,omitempty"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
}

// LimitOr returns the configured limit, or fallback when unset.
func (c QueryConfig) LimitOr(fallback int) int {
	if c.Limit > 0 {
		return c.Limit
	}
	return fallback
}

// QueryDefinition is a catalog entry naming an analytical view.
type QueryDefinition struct {
	ID        string      `json:"id" yaml:"id"`
	Title     string      `json:"title" yaml:"title"`
	Status    string      `json:"status" yaml:"status"`
	QueryType string      `json:"queryType" yaml:"query_type"`
	Config    QueryConfig `json:"config" yaml:"config"`
}

// SourceLink cites the table or page a result can be verified against.
type SourceLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// QueryResult is the uniform envelope returned for every query type.
type QueryResult struct {
	QueryID    string     `json:"queryId"`
	ClientCode string     `json:"clientCode"`
	Title      string     `json:"title"`
	Status     string     `json:"status"`
	QueryType  string     `json:"queryType"`
	Data       any        `json:"data"`
	ExecutedAt string     `json:"executedAt"`
	SourceLink SourceLink `json:"sourceLink"`
}

// QueryExecution is one entry of the execution log.
type QueryExecution struct {
	ID         uuid.UUID
	ClientCode string
	QueryID    string
	QueryType  string
	Outcome    string
	DurationMS int64
	ExecutedAt time.Time
}

// ExecutionCount aggregates the execution log per query type and outcome.
type ExecutionCount struct {
	QueryType string
	Outcome   string
	Count     int64
}
