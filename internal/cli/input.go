package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/employee"
	"gopkg.in/yaml.v3"
)

type rosterEntry struct {
	Username    string `json:"username" yaml:"username"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	Designation string `json:"designation" yaml:"designation"`
}

// decodeFile picks JSON or YAML by file extension.
func decodeFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, out)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, out)
	default:
		return fmt.Errorf("unsupported input format %q: use .json, .yaml or .yml", ext)
	}
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// LoadRecords reads raw attendance records, keeping file order.
func LoadRecords(path string) ([]attendance.RawRecord, error) {
	var records []attendance.RawRecord
	if err := decodeFile(path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func LoadRoster(path string) ([]employee.Employee, error) {
	var entries []rosterEntry
	if err := decodeFile(path, &entries); err != nil {
		return nil, err
	}

	roster := make([]employee.Employee, 0, len(entries))
	for i, e := range entries {
		if strings.TrimSpace(e.Username) == "" {
			return nil, fmt.Errorf("roster entry %d: username is required", i)
		}
		displayName := e.DisplayName
		if displayName == "" {
			displayName = e.Username
		}
		roster = append(roster, employee.Employee{
			Username:    e.Username,
			DisplayName: displayName,
			Designation: e.Designation,
		})
	}
	return roster, nil
}
