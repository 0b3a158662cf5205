package grpcv1

import (
	"context"
	"crypto/subtle"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// BearerAuth rejects calls whose authorization metadata does not carry the configured
// token. An empty token rejects everything.
func BearerAuth(token string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		md, _ := metadata.FromIncomingContext(ctx)
		var got string
		for _, v := range md.Get("authorization") {
			if after, ok := strings.CutPrefix(v, "Bearer "); ok {
				got = after
				break
			}
		}
		if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			return nil, status.Error(codes.Unauthenticated, "invalid or missing bearer token")
		}
		return next(ctx, req)
	}
}
