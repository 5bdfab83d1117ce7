package utils

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

func ToUUID(s string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil
	}
	return id
}

func ToNumberWithDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
