package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kmercer13/villageforge/pkg/npc"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <npc.json> [npc.json ...]\n", os.Args[0])
		os.Exit(1)
	}

	validator := &NPCValidator{}
	failed := false

	for _, filename := range os.Args[1:] {
		if err := validator.validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
			continue
		}
		fmt.Printf("%s is valid!\n", filename)
	}

	if failed {
		os.Exit(1)
	}
}

type NPCValidator struct {
	errors []string
}

func (v *NPCValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("character file must have .json extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, ".json")
	if !isValidID(nameWithoutExt) {
		return fmt.Errorf("character filename '%s' must be lowercase snake_case (e.g., innkeeper.json, not Inn-Keeper.json)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	v.errors = nil

	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	var cfg npc.Config
	decoder := json.NewDecoder(strings.NewReader(string(data)))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&cfg); err != nil {
		return fmt.Errorf("file %s failed strict JSON unmarshaling: %w", filename, err)
	}

	v.validateConfig(&cfg, nameWithoutExt)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}

	return nil
}

func (v *NPCValidator) validateConfig(cfg *npc.Config, filename string) {
	if cfg.ID == "" {
		v.addError("character has no id")
	} else {
		if !isValidID(cfg.ID) {
			v.addError(fmt.Sprintf("character id '%s' should be lowercase snake_case", cfg.ID))
		}
		if cfg.ID != filename {
			v.addError(fmt.Sprintf("character id '%s' should match the filename '%s.json'", cfg.ID, filename))
		}
	}

	if cfg.Name == "" {
		v.addError("character has no display name")
	}
	if cfg.Perspective == "" {
		v.addError("character has no perspective (role description)")
	}
	if cfg.Style == "" {
		v.addError("character has no talking style")
	}

	if cfg.Mission != "" {
		if !isValidID(cfg.Mission) {
			v.addError(fmt.Sprintf("mission id '%s' should be lowercase snake_case", cfg.Mission))
		}
		if cfg.MissionInstructions == "" {
			v.addError(fmt.Sprintf("character owns mission '%s' but has no mission instructions", cfg.Mission))
		}
		if !strings.Contains(cfg.MissionInstructions, cfg.Mission) {
			v.addError(fmt.Sprintf("mission instructions never reference mission id '%s'; the model cannot emit the completion directive without it", cfg.Mission))
		}
	}
}

func (v *NPCValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}
