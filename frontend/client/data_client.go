package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mhasan/lifeos/backend/models"
)

// tokenResponse mirrors the token envelope the auth endpoints return.
type tokenResponse struct {
	AuthToken    string `json:"authToken"`
	RefreshToken string `json:"refreshToken"`
}

// sendRequest sends a JSON request to the server and decodes the response
// body into out, when out is non-nil. Error responses carry a JSON envelope
// with a single "error" field, which is surfaced as a plain error.
func sendRequest(method, path string, tokenString *string, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		reqBody, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to create request: %v", err)
		}
		body = bytes.NewBuffer(reqBody)
	}

	req, err := http.NewRequest(method, ServerURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if tokenString != nil {
		req.Header.Add("Authorization", "Bearer "+*tokenString)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var envelope struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(bodyBytes, &envelope); err == nil && envelope.Error != "" {
			return errors.New(envelope.Error)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(bodyBytes, out); err != nil {
			return err
		}
	}
	return nil
}

// authenticated returns a usable token or an error when no user is signed in.
func authenticated() (string, error) {
	token, err := IsUserAuthenticated()
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", errors.New("no user is currently signed in")
	}
	return token, nil
}

// GetData fetches the signed-in user's entire life data aggregate.
func GetData() (models.AppData, error) {
	token, err := authenticated()
	if err != nil {
		return models.AppData{}, err
	}
	var data models.AppData
	if err := sendRequest("GET", "/data", &token, nil, &data); err != nil {
		return models.AppData{}, err
	}
	return data, nil
}

// RunCommand executes a named mutation against the signed-in user's life
// data and decodes the response into out, when out is non-nil.
func RunCommand(command string, payload interface{}, out interface{}) error {
	token, err := authenticated()
	if err != nil {
		return err
	}
	return sendRequest("POST", "/commands/"+command, &token, payload, out)
}

// ExportData downloads the user's data as a JSON backup.
func ExportData() (string, error) {
	token, err := authenticated()
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("GET", ServerURL+"/data/export", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Add("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("export failed with status %d", resp.StatusCode)
	}
	return string(bodyBytes), nil
}

// ImportData uploads a JSON backup, replacing the user's current data. The
// server rejects payloads that do not look like a backup file.
func ImportData(backup string) error {
	token, err := authenticated()
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", ServerURL+"/data/import", strings.NewReader(backup))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Add("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		var envelope struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(bodyBytes, &envelope); err == nil && envelope.Error != "" {
			return errors.New(envelope.Error)
		}
		return fmt.Errorf("import failed with status %d", resp.StatusCode)
	}
	return nil
}

// ActiveReminder returns the reminder currently demanding the user's
// attention, or nil when there is none.
func ActiveReminder() (*models.Reminder, error) {
	token, err := authenticated()
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Reminder *models.Reminder `json:"reminder"`
	}
	if err := sendRequest("GET", "/reminders/active", &token, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Reminder, nil
}

// AcknowledgeReminder dismisses the active reminder for good.
func AcknowledgeReminder() error {
	token, err := authenticated()
	if err != nil {
		return err
	}
	return sendRequest("POST", "/reminders/acknowledge", &token, nil, nil)
}

// SnoozeReminder puts the active reminder away without dismissing it.
func SnoozeReminder() error {
	token, err := authenticated()
	if err != nil {
		return err
	}
	return sendRequest("POST", "/reminders/snooze", &token, nil, nil)
}
