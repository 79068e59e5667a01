package state

import (
	"encoding/json"
	"log"

	"github.com/mhasan/lifeos/backend/models"
)

// ExportData serializes the full aggregate for download as a JSON file.
func (s *Store) ExportData() ([]byte, error) {
	return json.MarshalIndent(s.Data(), "", "  ")
}

// ImportData replaces the aggregate with defaults overlaid by the supplied
// JSON. The payload must at minimum carry the "tasks" and "settings" keys;
// anything else is rejected wholesale and the current aggregate is left
// untouched. Returns whether the import was applied.
func (s *Store) ImportData(jsonData string) bool {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonData), &keys); err != nil {
		log.Printf("import failed: %v", err)
		return false
	}
	if _, ok := keys["tasks"]; !ok {
		log.Println("import failed: missing tasks")
		return false
	}
	if _, ok := keys["settings"]; !ok {
		log.Println("import failed: missing settings")
		return false
	}

	// Unmarshal over the defaults so fields absent from the payload keep
	// their default values instead of zeroing out.
	data := models.DefaultData()
	if err := json.Unmarshal([]byte(jsonData), &data); err != nil {
		log.Printf("import failed: %v", err)
		return false
	}

	s.Replace(data, OriginLocal)
	return true
}

// ClearData resets the aggregate to defaults while keeping the user's
// settings.
func (s *Store) ClearData() {
	s.apply(func(data models.AppData) models.AppData {
		next := models.DefaultData()
		next.Settings = data.Settings
		return next
	})
}
