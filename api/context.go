package api

import (
	"context"
	"errors"
)

type keyType string

const adminUIDKey keyType = "adminUID"

// ctxWithAdminUID adds the verified Firebase UID to the context
func ctxWithAdminUID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, adminUIDKey, uid)
}

// ctxGetAdminUID retrieves the verified Firebase UID from the context
func ctxGetAdminUID(ctx context.Context) (string, error) {
	ctxValue := ctx.Value(adminUIDKey)
	if ctxValue == nil {
		return "", errors.New("admin uid not found in context")
	}
	uid, ok := ctxValue.(string)
	if !ok {
		return "", errors.New("admin uid is not of type `string`")
	}
	return uid, nil
}
