package util

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseObjectID 解析 24 位十六进制 ObjectID
func ParseObjectID(hex string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
