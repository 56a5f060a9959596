package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/Davi3103/chamados4/internal/api/http"
	"github.com/Davi3103/chamados4/internal/api/http/handlers"
	"github.com/Davi3103/chamados4/internal/config"
	"github.com/Davi3103/chamados4/internal/observability"
	"github.com/Davi3103/chamados4/internal/service"
	"github.com/Davi3103/chamados4/internal/validation"
)

type mockIntake struct {
	SubmitFunc func(ctx context.Context, sub *validation.Submission, files []service.UploadedFile) (*service.IntakeResult, error)
}

func (m *mockIntake) Submit(ctx context.Context, sub *validation.Submission, files []service.UploadedFile) (*service.IntakeResult, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, sub, files)
	}
	return nil, errors.New("SubmitFunc not implemented")
}

func newTestApp(intake handlers.TicketIntake) *fiber.App {
	app := fiber.New()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(nil, nil, metrics),
		Intake: handlers.NewIntakeHandler(validation.New(config.DefaultCategoryTable()), intake),
	})
	return app
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    *struct {
		TicketNumber string `json:"ticketNumber"`
		ID           int64  `json:"id"`
		Attachments  []struct {
			Name string `json:"name"`
			Size int64  `json:"size"`
		} `json:"attachments"`
	} `json:"data"`
}

func decode(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func validForm() map[string]string {
	return map[string]string{
		"name":        "Ana",
		"email":       "ana@x.com",
		"subject":     "Printer jam",
		"category":    "printer",
		"priority":    "high",
		"description": "Printer jams every print job",
	}
}

func multipartRequest(t *testing.T, fields map[string]string, files map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	for name, content := range files {
		part, err := writer.CreateFormFile("attachments", name)
		require.NoError(t, err)
		_, err = io.WriteString(part, content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/tickets", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestCreateReturnsTicketEnvelope(t *testing.T) {
	app := newTestApp(&mockIntake{
		SubmitFunc: func(ctx context.Context, sub *validation.Submission, files []service.UploadedFile) (*service.IntakeResult, error) {
			return &service.IntakeResult{
				TicketID:     1,
				TicketNumber: "TKT-20260901-000001",
				Attachments: []service.AttachmentResult{
					{OriginalName: "error.log", Size: 4, Status: service.AttachmentStored},
					{OriginalName: "huge.bin", Size: 999, Status: service.AttachmentSkipped, SkipReason: service.SkipReasonTooLarge},
				},
				Notified: true,
			}, nil
		},
	})

	resp, err := app.Test(multipartRequest(t, validForm(), map[string]string{"error.log": "boom"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decode(t, resp)
	assert.True(t, body.Success)
	assert.Equal(t, "ticket created successfully", body.Message)
	require.NotNil(t, body.Data)
	assert.Equal(t, "TKT-20260901-000001", body.Data.TicketNumber)
	assert.Equal(t, int64(1), body.Data.ID)
	require.Len(t, body.Data.Attachments, 1, "skipped files never appear in the response")
	assert.Equal(t, "error.log", body.Data.Attachments[0].Name)
}

func TestCreateForwardsFormFieldsAndFiles(t *testing.T) {
	var gotSub *validation.Submission
	var gotFiles []service.UploadedFile
	app := newTestApp(&mockIntake{
		SubmitFunc: func(ctx context.Context, sub *validation.Submission, files []service.UploadedFile) (*service.IntakeResult, error) {
			gotSub, gotFiles = sub, files
			return &service.IntakeResult{TicketID: 1, TicketNumber: "TKT-20260901-000001"}, nil
		},
	})

	fields := validForm()
	fields["urgency"] = "high"
	fields["location"] = "Building B"
	resp, err := app.Test(multipartRequest(t, fields, map[string]string{"notes.txt": "hello"}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.NotNil(t, gotSub)
	assert.Equal(t, "Ana", gotSub.Name)
	require.NotNil(t, gotSub.Urgency)
	assert.Equal(t, "high", *gotSub.Urgency)
	require.NotNil(t, gotSub.Location)
	assert.Equal(t, "Building B", *gotSub.Location)
	assert.Nil(t, gotSub.Phone, "absent optional fields stay nil")

	require.Len(t, gotFiles, 1)
	assert.Equal(t, "notes.txt", gotFiles[0].Name)
	src, err := gotFiles[0].Open()
	require.NoError(t, err)
	defer src.Close()
	content, err := io.ReadAll(src)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

func TestCreateRejectsInvalidSubmission(t *testing.T) {
	submitCalled := false
	app := newTestApp(&mockIntake{
		SubmitFunc: func(ctx context.Context, sub *validation.Submission, files []service.UploadedFile) (*service.IntakeResult, error) {
			submitCalled = true
			return nil, nil
		},
	})

	resp, err := app.Test(multipartRequest(t, map[string]string{}, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, submitCalled)

	body := decode(t, resp)
	assert.False(t, body.Success)
	assert.Contains(t, body.Message, "invalid submission:")
	assert.Contains(t, body.Message, "field 'email' is required")
	assert.Nil(t, body.Data)
}

func TestCreateHidesInternalFailureDetails(t *testing.T) {
	app := newTestApp(&mockIntake{
		SubmitFunc: func(ctx context.Context, sub *validation.Submission, files []service.UploadedFile) (*service.IntakeResult, error) {
			return nil, errors.New("pq: duplicate key value violates unique constraint")
		},
	})

	resp, err := app.Test(multipartRequest(t, validForm(), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decode(t, resp)
	assert.False(t, body.Success)
	assert.Equal(t, "Internal server error. Please try again.", body.Message)
}

func TestTicketsRouteRejectsOtherMethods(t *testing.T) {
	app := newTestApp(&mockIntake{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/tickets", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	body := decode(t, resp)
	assert.False(t, body.Success)
	assert.Equal(t, "method not allowed, use POST", body.Message)
}

func TestTicketsRouteAnswersPreflight(t *testing.T) {
	app := newTestApp(&mockIntake{})

	req := httptest.NewRequest(http.MethodOptions, "/tickets", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestHealthLive(t *testing.T) {
	app := newTestApp(&mockIntake{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
