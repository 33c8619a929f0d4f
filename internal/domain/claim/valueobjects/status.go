package valueobjects

import "fmt"

type ClaimStatus string

const (
	StatusActive   ClaimStatus = "active"
	StatusArchived ClaimStatus = "archived"
)

func NewClaimStatus(s string) (ClaimStatus, error) {
	status := ClaimStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid claim status: %s", s)
	}
	return status, nil
}

func (s ClaimStatus) String() string {
	return string(s)
}

func (s ClaimStatus) IsValid() bool {
	return s == StatusActive || s == StatusArchived
}

func (s ClaimStatus) IsActive() bool {
	return s == StatusActive
}

func (s ClaimStatus) IsArchived() bool {
	return s == StatusArchived
}
