package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"telegram-history-export/internal/cache"
	"telegram-history-export/internal/domain"
	"telegram-history-export/internal/pkg/config"
)

// Mock implementation for ExportRunner
type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) RunExport(ctx context.Context, filePath string) (domain.ExportStats, error) {
	args := m.Called(ctx, filePath)
	return args.Get(0).(domain.ExportStats), args.Error(1)
}

func TestServer(t *testing.T) {
	cfg := &config.Config{
		Server: config.Server{Host: "localhost", Port: 8080},
	}
	mockRun := new(mockRunner)
	taskStore := NewTaskStore()
	cacheStore := cache.NewCacheStore()

	srv, err := New(cfg, mockRun, taskStore, cacheStore)
	require.NoError(t, err)

	t.Run("Health Check", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/health", nil)
		rr := httptest.NewRecorder()
		srv.HTTPServer.Handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp map[string]string
		err := json.NewDecoder(rr.Body).Decode(&resp)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp["status"])
	})

	t.Run("Export Endpoint", func(t *testing.T) {
		// Create a dummy snapshot for upload
		tmpfile, err := os.CreateTemp(t.TempDir(), "snapshot.json")
		require.NoError(t, err)
		tmpfile.WriteString(`{}`)
		require.NoError(t, tmpfile.Close())

		var b bytes.Buffer
		writer := multipart.NewWriter(&b)
		fw, err := writer.CreateFormFile("file", filepath.Base(tmpfile.Name()))
		require.NoError(t, err)
		file, err := os.Open(tmpfile.Name())
		require.NoError(t, err)
		_, err = io.Copy(fw, file)
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		mockRun.On("RunExport", mock.Anything, mock.AnythingOfType("string")).Return(domain.ExportStats{Messages: 1}, nil).Once()

		req := httptest.NewRequest("POST", "/api/v1/export", &b)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		rr := httptest.NewRecorder()
		srv.HTTPServer.Handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusAccepted, rr.Code)
		var resp map[string]string
		err = json.NewDecoder(rr.Body).Decode(&resp)
		require.NoError(t, err)
		assert.NotEmpty(t, resp["task_id"])

		// Allow time for the goroutine to start
		time.Sleep(10 * time.Millisecond)
		mockRun.AssertExpectations(t)
	})

	t.Run("Export By Hash - Cache Hit", func(t *testing.T) {
		stats := domain.ExportStats{MainFilePath: "export/cafe/result.txt", Messages: 7}
		cacheStore.Put("cafe", stats, time.Minute)

		body := bytes.NewBufferString(`{"hash":"cafe"}`)
		req := httptest.NewRequest("POST", "/api/v1/export-by-hash", body)
		rr := httptest.NewRecorder()
		srv.HTTPServer.Handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusAccepted, rr.Code)
		var resp map[string]string
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		require.NotEmpty(t, resp["task_id"])

		task, err := taskStore.GetTask(resp["task_id"])
		require.NoError(t, err)
		assert.Equal(t, TaskStatusCompleted, task.Status)
		assert.Equal(t, stats, task.Result)
	})

	t.Run("Export By Hash - Cache Miss", func(t *testing.T) {
		body := bytes.NewBufferString(`{"hash":"deadbeef"}`)
		req := httptest.NewRequest("POST", "/api/v1/export-by-hash", body)
		rr := httptest.NewRecorder()
		srv.HTTPServer.Handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusAccepted, rr.Code)
		var resp map[string]string
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))

		task, err := taskStore.GetTask(resp["task_id"])
		require.NoError(t, err)
		assert.Equal(t, TaskStatusFailed, task.Status)
	})

	t.Run("Task Status Endpoint", func(t *testing.T) {
		taskID := "test-task-1"
		srv.taskStore.CreateTask(taskID, time.Minute)

		req := httptest.NewRequest("GET", "/api/v1/tasks/"+taskID, nil)
		rr := httptest.NewRecorder()
		srv.HTTPServer.Handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp map[string]interface{}
		err := json.NewDecoder(rr.Body).Decode(&resp)
		require.NoError(t, err)
		assert.Equal(t, taskID, resp["task_id"])
		assert.Equal(t, string(TaskStatusPending), resp["status"])
	})

	t.Run("Task Not Found", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/tasks/non-existent", nil)
		rr := httptest.NewRecorder()
		srv.HTTPServer.Handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Task Result Endpoint - Not Completed", func(t *testing.T) {
		taskID := "test-task-2"
		srv.taskStore.CreateTask(taskID, time.Minute)

		req := httptest.NewRequest("GET", "/api/v1/tasks/"+taskID+"/result", nil)
		rr := httptest.NewRecorder()
		srv.HTTPServer.Handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Task Result Endpoint - Success", func(t *testing.T) {
		taskID := "test-task-3"
		srv.taskStore.CreateTask(taskID, time.Minute)
		result := domain.ExportStats{
			OutputDir:    "export/abc/",
			MainFilePath: "export/abc/result.txt",
			Userpics:     2,
			Contacts:     3,
			Sessions:     1,
			Messages:     42,
			Dialogs: []domain.DialogSummary{
				{Name: "Alice", Type: domain.DialogPersonal, Messages: 42, Path: "chats/1_alice/messages.txt"},
			},
		}
		srv.taskStore.UpdateTaskResult(taskID, result)

		req := httptest.NewRequest("GET", "/api/v1/tasks/"+taskID+"/result", nil)
		rr := httptest.NewRecorder()
		srv.HTTPServer.Handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp struct {
			OutputDir    string                 `json:"output_dir"`
			MainFilePath string                 `json:"main_file_path"`
			Messages     int                    `json:"messages"`
			Dialogs      []domain.DialogSummary `json:"dialogs"`
		}
		err := json.NewDecoder(rr.Body).Decode(&resp)
		require.NoError(t, err)

		assert.Equal(t, "export/abc/", resp.OutputDir)
		assert.Equal(t, "export/abc/result.txt", resp.MainFilePath)
		assert.Equal(t, 42, resp.Messages)
		require.Len(t, resp.Dialogs, 1)
		assert.Equal(t, "Alice", resp.Dialogs[0].Name)
	})

	t.Run("Task Result File - Download", func(t *testing.T) {
		dir := t.TempDir()
		mainFile := filepath.Join(dir, "result.txt")
		require.NoError(t, os.WriteFile(mainFile, []byte("Personal information\n"), 0o644))

		taskID := "test-task-4"
		srv.taskStore.CreateTask(taskID, time.Minute)
		srv.taskStore.UpdateTaskResult(taskID, domain.ExportStats{MainFilePath: mainFile})

		req := httptest.NewRequest("GET", "/api/v1/tasks/"+taskID+"/result/file", nil)
		rr := httptest.NewRecorder()
		srv.HTTPServer.Handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Personal information")
	})
}
