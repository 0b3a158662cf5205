package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Egor213/RBACPanel/internal/domain"
	"github.com/Egor213/RBACPanel/internal/metrics"
	brokermocks "github.com/Egor213/RBACPanel/internal/mocks/broker"
	repository_mock "github.com/Egor213/RBACPanel/internal/mocks/repository"
	"github.com/Egor213/RBACPanel/internal/repo/repotypes"
	"github.com/Egor213/RBACPanel/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func repeatLines(n int, fields string, ago time.Duration) []string {
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		lines = append(lines, jsonLine(fields, ago))
	}
	return lines
}

func alertTypes(alerts []domain.Alert) []string {
	types := []string{}
	for _, a := range alerts {
		types = append(types, a.Type+"/"+string(a.Level))
	}
	return types
}

func TestLogService_RealTimeAlertsThresholds(t *testing.T) {
	testCases := []struct {
		name  string
		setup func(t *testing.T, root string)
		want  []string
	}{
		{
			name: "ten errors is quiet",
			setup: func(t *testing.T, root string) {
				writeLog(t, root, "backend", "app.log", repeatLines(10, `"level":"ERROR","message":"boom"`, time.Minute)...)
			},
			want: []string{},
		},
		{
			name: "eleven errors alert",
			setup: func(t *testing.T, root string) {
				lines := repeatLines(6, `"level":"ERROR","message":"boom"`, time.Minute)
				lines = append(lines, repeatLines(5, `"level":"CRITICAL","message":"boom"`, time.Minute)...)
				writeLog(t, root, "backend", "app.log", lines...)
			},
			want: []string{"errors/high"},
		},
		{
			name: "old errors are outside the hour",
			setup: func(t *testing.T, root string) {
				writeLog(t, root, "backend", "app.log", repeatLines(20, `"level":"ERROR","message":"boom"`, 2*time.Hour)...)
			},
			want: []string{},
		},
		{
			name: "all four in fixed order",
			setup: func(t *testing.T, root string) {
				lines := repeatLines(11, `"level":"ERROR","message":"boom"`, time.Minute)
				lines = append(lines, repeatLines(6, `"level":"INFO","duration":1.5`, time.Minute)...)
				writeLog(t, root, "backend", "app.log", lines...)
				writeLog(t, root, "frontend", "user_actions/actions.log",
					repeatLines(6, `"action":"login_failed","username":"mallory"`, time.Minute)...)
			},
			want: []string{"errors/high", "performance/medium", "security/high", "performance/medium"},
		},
		{
			name: "five failed logins is quiet",
			setup: func(t *testing.T, root string) {
				writeLog(t, root, "frontend", "user_actions/actions.log",
					repeatLines(5, `"action":"login_failed","username":"mallory"`, time.Minute)...)
			},
			want: []string{},
		},
		{
			name: "latency only",
			setup: func(t *testing.T, root string) {
				writeLog(t, root, "backend", "app.log", repeatLines(3, `"level":"INFO","duration":0.6`, time.Minute)...)
			},
			want: []string{"performance/medium"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			root := t.TempDir()
			tc.setup(t, root)

			alerts, err := newLogService(root).RealTimeAlerts(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.want, alertTypes(alerts))
			for _, a := range alerts {
				assert.Equal(t, testNow, a.Timestamp)
				assert.NotEmpty(t, a.Message)
			}
		})
	}
}

func TestLogService_RealTimeAlertsValues(t *testing.T) {
	root := t.TempDir()
	lines := repeatLines(12, `"level":"ERROR","message":"boom"`, time.Minute)
	lines = append(lines, repeatLines(2, `"level":"INFO","duration":0.8`, time.Minute)...)
	writeLog(t, root, "backend", "app.log", lines...)

	alerts, err := newLogService(root).RealTimeAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	assert.Equal(t, 12, alerts[0].Count)
	assert.True(t, strings.HasSuffix(alerts[0].Message, "12"))
	assert.InDelta(t, 0.8, alerts[1].Value, 1e-9)
	assert.Contains(t, alerts[1].Message, "0.800s")
}

func TestAlertService_Snapshot(t *testing.T) {
	errorLines := repeatLines(11, `"level":"ERROR","message":"boom"`, time.Minute)

	type mockBehavior func(h *repository_mock.MockAlertHistory, p *brokermocks.MockProducer)

	testCases := []struct {
		name         string
		lines        []string
		mockBehavior mockBehavior
		wantAlerts   int
		wantErrs     []error
	}{
		{
			name:  "saved and published",
			lines: errorLines,
			mockBehavior: func(h *repository_mock.MockAlertHistory, p *brokermocks.MockProducer) {
				h.EXPECT().SaveAlerts(gomock.Any(), gomock.Len(1)).Return(nil)
				p.EXPECT().PublishAlerts(gomock.Any(), gomock.Len(1)).Return(nil)
			},
			wantAlerts: 1,
		},
		{
			name:  "sink failures are joined",
			lines: errorLines,
			mockBehavior: func(h *repository_mock.MockAlertHistory, p *brokermocks.MockProducer) {
				h.EXPECT().SaveAlerts(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
				p.EXPECT().PublishAlerts(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
			},
			wantAlerts: 1,
			wantErrs:   []error{service.ErrAlertsNotSaved, service.ErrAlertsNotPublished},
		},
		{
			name:         "nothing to report",
			lines:        []string{jsonLine(`"level":"INFO"`, time.Minute)},
			mockBehavior: func(h *repository_mock.MockAlertHistory, p *brokermocks.MockProducer) {},
			wantAlerts:   0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			root := t.TempDir()
			writeLog(t, root, "backend", "app.log", tc.lines...)

			history := repository_mock.NewMockAlertHistory(ctrl)
			producer := brokermocks.NewMockProducer(ctrl)
			tc.mockBehavior(history, producer)

			svc := service.NewAlertService(newLogService(root), history, producer, metrics.NewTestCounters())
			alerts, err := svc.Snapshot(context.Background())

			assert.Len(t, alerts, tc.wantAlerts)
			if len(tc.wantErrs) == 0 {
				assert.NoError(t, err)
				return
			}
			for _, want := range tc.wantErrs {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestAlertService_SnapshotWithoutSinks(t *testing.T) {
	root := t.TempDir()
	writeLog(t, root, "backend", "app.log", repeatLines(11, `"level":"ERROR"`, time.Minute)...)

	svc := service.NewAlertService(newLogService(root), nil, nil, nil)
	alerts, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, alerts, 1)
}

func TestAlertService_History(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	history := repository_mock.NewMockAlertHistory(ctrl)
	filter := repotypes.AlertFilter{Type: domain.AlertTypeErrors, Limit: 10}
	want := []domain.Alert{{ID: 1, Type: domain.AlertTypeErrors, Level: domain.AlertLevelHigh}}
	history.EXPECT().ListAlerts(gomock.Any(), filter).Return(want, nil)

	svc := service.NewAlertService(nil, history, nil, nil)
	got, err := svc.History(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = service.NewAlertService(nil, nil, nil, nil).History(context.Background(), filter)
	assert.ErrorIs(t, err, service.ErrAlertHistoryDisabled)

	history.EXPECT().ListAlerts(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("query failed"))
	_, err = svc.History(context.Background(), filter)
	assert.Error(t, err)
}
