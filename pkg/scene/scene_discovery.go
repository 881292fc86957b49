package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const builtinGroup = "Built-in Scenes"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Value accepted by Create
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the JSON file (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// ListFileScenes scans dir for *.json scene files. A missing directory
// yields an empty list.
func ListFileScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Skip unreadable files but keep listing the rest
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneMetadata reads the optional name, description and group keys of
// a scene file. Missing keys fall back to values derived from the file name.
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	nameWithoutExt := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

	info := SceneInfo{
		ID:          filePath,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       "Scene Files",
		Type:        "file",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, err
	}

	var meta struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Group       string `json:"group"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return info, fmt.Errorf("invalid scene JSON: %w", err)
	}

	if name := strings.TrimSpace(meta.Name); name != "" {
		info.Name = name
		info.DisplayName = name
	}
	info.Description = strings.TrimSpace(meta.Description)
	if group := strings.TrimSpace(meta.Group); group != "" {
		info.Group = group
	}

	return info, nil
}

// ListAllScenes returns both built-in and file scenes, grouped by category
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	allScenes := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		allScenes = append(allScenes, SceneInfo{
			ID:          b.name,
			Name:        b.displayName,
			DisplayName: b.displayName,
			Description: b.description,
			Group:       builtinGroup,
			Type:        "builtin",
		})
	}

	fileScenes, err := ListFileScenes(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}
	allScenes = append(allScenes, fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, s := range allScenes {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if group, exists := groupMap[builtinGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{Name: builtinGroup, Scenes: group})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "orbit-demo" -> "Orbit Demo"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
