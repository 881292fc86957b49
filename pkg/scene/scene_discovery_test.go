package scene

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"mirror-room", "Mirror Room"},
		{"orbit_demo", "Orbit Demo"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestParseSceneMetadata(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name:    "complete_metadata.json",
			content: `{"name": "Mirror Room", "description": "Two facing mirrors", "group": "Mirrors", "spheres": []}`,
			expected: SceneInfo{
				Name:        "Mirror Room",
				DisplayName: "Mirror Room",
				Description: "Two facing mirrors",
				Group:       "Mirrors",
				Type:        "file",
			},
		},
		{
			name:    "partial_metadata.json",
			content: `{"description": "  Lonely sphere  "}`,
			expected: SceneInfo{
				Name:        "Partial Metadata",
				DisplayName: "Partial Metadata",
				Description: "Lonely sphere",
				Group:       "Scene Files",
				Type:        "file",
			},
		},
		{
			name:    "no-metadata.json",
			content: `{"maxBounces": 3}`,
			expected: SceneInfo{
				Name:        "No Metadata",
				DisplayName: "No Metadata",
				Group:       "Scene Files",
				Type:        "file",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.name)
			if err := os.WriteFile(path, []byte(tc.content), 0644); err != nil {
				t.Fatalf("Failed to write temp file: %v", err)
			}

			result, err := ParseSceneMetadata(path)
			if err != nil {
				t.Fatalf("ParseSceneMetadata() error: %v", err)
			}

			tc.expected.ID = path
			tc.expected.FilePath = path
			if result != tc.expected {
				t.Errorf("ParseSceneMetadata() = %+v, want %+v", result, tc.expected)
			}
		})
	}
}

func TestParseSceneMetadata_InvalidFile(t *testing.T) {
	if _, err := ParseSceneMetadata(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseSceneMetadata(bad); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

func TestListFileScenes(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b-scene.json": `{"name": "Beta"}`,
		"a-scene.json": `{"name": "Alpha"}`,
		"broken.json":  `{`,
		"notes.txt":    `not a scene`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	scenes, err := ListFileScenes(dir)
	if err != nil {
		t.Fatalf("ListFileScenes() error: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scenes (broken and non-JSON skipped), got %d", len(scenes))
	}
	if scenes[0].DisplayName != "Alpha" || scenes[1].DisplayName != "Beta" {
		t.Errorf("Expected scenes sorted by display name, got %q, %q", scenes[0].DisplayName, scenes[1].DisplayName)
	}
}

func TestListFileScenes_MissingDirectory(t *testing.T) {
	scenes, err := ListFileScenes(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Errorf("ListFileScenes() error: %v", err)
	}
	if scenes == nil || len(scenes) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", scenes)
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "extra.json"), []byte(`{"group": "Extras"}`), 0644); err != nil {
		t.Fatal(err)
	}

	response, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}

	if len(response.Groups) != 2 {
		t.Fatalf("Expected built-in and Extras groups, got %d groups", len(response.Groups))
	}
	if response.Groups[0].Name != "Built-in Scenes" {
		t.Errorf("Expected built-in group first, got %q", response.Groups[0].Name)
	}

	sceneIDs := make(map[string]bool)
	for _, s := range response.Groups[0].Scenes {
		if s.Type != "builtin" {
			t.Errorf("Invalid built-in scene type: %s", s.Type)
		}
		sceneIDs[s.ID] = true
	}
	for _, name := range BuiltinNames() {
		if !sceneIDs[name] {
			t.Errorf("Missing expected built-in scene: %s", name)
		}
	}

	extras := response.Groups[1]
	if extras.Name != "Extras" || len(extras.Scenes) != 1 {
		t.Fatalf("Unexpected file group: %+v", extras)
	}
	if extras.Scenes[0].FilePath == "" || extras.Scenes[0].ID != extras.Scenes[0].FilePath {
		t.Errorf("File scene ID should be its path, got %+v", extras.Scenes[0])
	}
}
