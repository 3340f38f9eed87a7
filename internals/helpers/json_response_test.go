// file: internals/helpers/json_response_test.go
package helper

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestJsonPartialEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/batch", func(c *fiber.Ctx) error {
		return JsonPartial(c, "batch partially failed", fiber.Map{
			"succeeded": []string{"a"},
			"error":     "create slot 2/2: boom",
		})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/batch", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	// 200: data was committed, even though the whole batch did not land.
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var body struct {
		Success   bool           `json:"success"`
		Message   string         `json:"message"`
		ErrorCode string         `json:"error_code"`
		Data      map[string]any `json:"data"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Success {
		t.Error("success = true, partial results must flag false")
	}
	if body.ErrorCode != "PARTIAL_SUCCESS" {
		t.Errorf("error_code = %q, want PARTIAL_SUCCESS", body.ErrorCode)
	}
	if body.Data == nil {
		t.Error("data payload dropped")
	}
}
