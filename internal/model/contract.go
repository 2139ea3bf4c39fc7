package model

import (
	"fmt"
	"time"
)

type ContractStatus string

const (
	ContractStatusDraft     ContractStatus = "draft"
	ContractStatusActive    ContractStatus = "active"
	ContractStatusCompleted ContractStatus = "completed"
	ContractStatusCancelled ContractStatus = "cancelled"
)

func ParseContractStatus(s string) (ContractStatus, error) {
	switch st := ContractStatus(s); st {
	case ContractStatusDraft, ContractStatusActive, ContractStatusCompleted, ContractStatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("unknown contract status %q", s)
	}
}

type Contract struct {
	ID        string         `json:"id"`
	ProjectID string         `json:"project_id"`
	Title     string         `json:"title"`
	Provider  string         `json:"provider"`
	Value     Cents          `json:"value"`
	Status    ContractStatus `json:"status"`
	SignedAt  time.Time      `json:"signed_at"`
	EndsAt    time.Time      `json:"ends_at"`
}
