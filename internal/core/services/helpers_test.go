package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/inventory-voice/internal/core/domain"
	"github.com/ammerola/inventory-voice/internal/core/services"
	"github.com/ammerola/inventory-voice/test/helpers"
	"github.com/ammerola/inventory-voice/test/mocks"
)

func ptr[T any](v T) *T { return &v }

// result decodes a canned response body into a successful exchange
func result(t *testing.T, body string) domain.Result {
	t.Helper()
	env, err := domain.DecodeEnvelope([]byte(body))
	require.NoError(t, err)
	return domain.Success(env)
}

// envelopeJSON encodes an envelope built with the helpers package
func envelopeJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func newTools(t *testing.T) (*services.InventoryTools, *mocks.MockInventoryAPI) {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := mocks.NewMockInventoryAPI(ctrl)
	return services.NewInventoryTools(api, helpers.TestLogger()), api
}

// expectCall expects exactly one exchange. An empty wantBody means no body.
func expectCall(t *testing.T, api *mocks.MockInventoryAPI, method, endpoint, wantBody string, res domain.Result) {
	t.Helper()
	api.EXPECT().
		Call(gomock.Any(), method, endpoint, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, body any) domain.Result {
			if wantBody == "" {
				assert.Nil(t, body)
			} else {
				got, err := json.Marshal(body)
				require.NoError(t, err)
				assert.JSONEq(t, wantBody, string(got))
			}
			return res
		}).
		Times(1)
}

// toolCase is shared by the per-operation tables
type toolCase struct {
	name     string
	run      func(ctx context.Context, tools *services.InventoryTools) (string, error)
	method   string
	endpoint string
	body     string
	response func(t *testing.T) domain.Result
	want     string
	wantErr  string
}

func runToolCases(t *testing.T, tests []toolCase) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tools, api := newTools(t)
			expectCall(t, api, tt.method, tt.endpoint, tt.body, tt.response(t))

			got, err := tt.run(context.Background(), tools)

			if tt.wantErr != "" {
				require.Error(t, err)
				toolErr, ok := domain.IsToolError(err)
				require.True(t, ok, "expected a ToolError, got %T", err)
				assert.Equal(t, tt.wantErr, toolErr.Message)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func respond(body string) func(t *testing.T) domain.Result {
	return func(t *testing.T) domain.Result { return result(t, body) }
}

func respondFailure(msg string) func(t *testing.T) domain.Result {
	return func(*testing.T) domain.Result { return domain.Failure(msg) }
}

func respondWith(v any) func(t *testing.T) domain.Result {
	return func(t *testing.T) domain.Result { return result(t, envelopeJSON(t, v)) }
}
