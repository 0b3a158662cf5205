package grpcv1_test

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	grpcv1 "github.com/Egor213/RBACPanel/internal/controller/grpc/v1"
	"github.com/Egor213/RBACPanel/internal/metrics"
	"github.com/Egor213/RBACPanel/internal/repo"
	"github.com/Egor213/RBACPanel/internal/service"
	"github.com/Egor213/RBACPanel/pkg/grpcserver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

const token = "s3cret"

func startServer(t *testing.T) *grpc.ClientConn {
	t.Helper()
	root := t.TempDir()
	line := `{"timestamp":"` + time.Now().UTC().Add(-5*time.Minute).Format(time.RFC3339) +
		`","level":"WARNING","logger":"api","message":"slow query","endpoint":"/users","duration":1.5}`
	require.NoError(t, os.MkdirAll(filepath.Join(root, "backend"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "backend", "app.log"), []byte(line+"\n"), 0o644))

	services := service.NewServices(service.ServicesDependencies{
		Repos:    repo.NewRepositories(root, nil),
		Location: time.UTC,
	})

	lis := bufconn.Listen(1 << 20)
	srv, err := grpcserver.New(
		grpcv1.RegisterServices(services, metrics.NewTestCounters()),
		grpcserver.WithListener(lis),
		grpcserver.WithUnaryInterceptors(grpcv1.BearerAuth(token)),
	)
	require.NoError(t, err)
	t.Cleanup(srv.Shutdown)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func invoke(ctx context.Context, conn *grpc.ClientConn, method string, req map[string]any) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return nil, err
	}
	out := &structpb.Struct{}
	err = conn.Invoke(ctx, "/"+grpcv1.ServiceName+"/"+method, in, out)
	return out, err
}

func authorized() context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+token)
}

func TestAnalytics_Summary(t *testing.T) {
	conn := startServer(t)

	out, err := invoke(authorized(), conn, "GetSummary", map[string]any{"hours": 1})
	require.NoError(t, err)

	m := out.AsMap()
	assert.Equal(t, 1.0, m["total_entries"])
	assert.Equal(t, map[string]any{"WARNING": 1.0}, m["by_level"])
}

func TestAnalytics_FilteredLogs(t *testing.T) {
	conn := startServer(t)

	out, err := invoke(authorized(), conn, "GetFilteredLogs", map[string]any{"level": "warn", "search": "SLOW"})
	require.NoError(t, err)
	entries, ok := out.AsMap()["entries"].([]any)
	require.True(t, ok)
	assert.Len(t, entries, 1)

	out, err = invoke(authorized(), conn, "GetFilteredLogs", map[string]any{"level": "error"})
	require.NoError(t, err)
	assert.Empty(t, out.AsMap()["entries"])
}

func TestAnalytics_Errors(t *testing.T) {
	conn := startServer(t)

	tests := []struct {
		name     string
		ctx      context.Context
		req      map[string]any
		wantCode codes.Code
	}{
		{name: "no token", ctx: context.Background(), wantCode: codes.Unauthenticated},
		{
			name:     "wrong token",
			ctx:      metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer nope"),
			wantCode: codes.Unauthenticated,
		},
		{name: "bad category", ctx: authorized(), req: map[string]any{"category": "kernel"}, wantCode: codes.InvalidArgument},
		{name: "bad hours", ctx: authorized(), req: map[string]any{"hours": 0.5}, wantCode: codes.InvalidArgument},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := invoke(tc.ctx, conn, "GetSummary", tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.wantCode, status.Code(err))
		})
	}
}

func TestAnalytics_ListLogFiles(t *testing.T) {
	conn := startServer(t)

	out, err := invoke(authorized(), conn, "ListLogFiles", nil)
	require.NoError(t, err)
	files := out.AsMap()["files"].(map[string]any)
	assert.Equal(t, []any{"app.log"}, files["Backend"])
}
