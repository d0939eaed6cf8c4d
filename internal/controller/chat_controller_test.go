package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"shop-agent-be/internal/dto"
	"shop-agent-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChatService struct {
	res *dto.ChatResponse
	err error
}

func (s *stubChatService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	return s.res, s.err
}

func newChatTestApp(svc *stubChatService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewChatController(svc).RegisterRoutes(app.Group("/api"))
	return app
}

func TestChatEndpoint(t *testing.T) {
	svc := &stubChatService{
		res: &dto.ChatResponse{
			Reply:    "Found something!",
			Products: []dto.ChatProduct{{Id: "p1", Title: "Red Runner"}},
		},
	}
	app := newChatTestApp(svc)

	body, _ := json.Marshal(dto.ChatRequest{Message: "find red shoes"})
	req := httptest.NewRequest("POST", "/api/chat/v1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	var envelope struct {
		Success bool             `json:"success"`
		Data    dto.ChatResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "Found something!", envelope.Data.Reply)
	require.Len(t, envelope.Data.Products, 1)
	assert.Equal(t, "Red Runner", envelope.Data.Products[0].Title)
}

func TestChatEndpointRejectsEmptyMessage(t *testing.T) {
	app := newChatTestApp(&stubChatService{res: &dto.ChatResponse{}})

	req := httptest.NewRequest("POST", "/api/chat/v1", bytes.NewReader([]byte(`{"message":""}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
