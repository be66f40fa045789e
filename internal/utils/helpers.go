package utils

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type clientInfoKey struct{}

// ClientInfo describes the caller of an API request for activity records.
type ClientInfo struct {
	IPAddress string
	UserAgent string
	RequestID string
}

func WithClientInfo(ctx context.Context, info ClientInfo) context.Context {
	return context.WithValue(ctx, clientInfoKey{}, info)
}

func ClientInfoFromContext(ctx context.Context) ClientInfo {
	info, _ := ctx.Value(clientInfoKey{}).(ClientInfo)
	return info
}

// UniqueObjectIDs drops zero and repeated ids, keeping first-seen order.
func UniqueObjectIDs(ids ...primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(ids))
	result := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if id.IsZero() || seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}

func TrimStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

func IntPtr(i int) *int {
	return &i
}

func StringPtr(s string) *string {
	return &s
}
